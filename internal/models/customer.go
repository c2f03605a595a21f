package models

type AccountType string

const (
	AccountTypeCustomer AccountType = "customer"
	AccountTypeAgent    AccountType = "agent"
)

// Customer mirrors the upstream customer record. Field names follow the
// upstream JSON contract verbatim.
type Customer struct {
	CustomerAccountNumber string      `json:"customerAccountNumber"`
	FirstName             string      `json:"firstName"`
	LastName              string      `json:"lastName"`
	ContactNumber         string      `json:"contactNumber"`
	Address               string      `json:"address"`
	Email                 string      `json:"email"`
	Password              string      `json:"password"`
	AccountType           AccountType `json:"accountType"`
}

func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// Merge overlays non-empty server-assigned fields onto the client record.
func (c Customer) Merge(server Customer) Customer {
	out := c
	if server.CustomerAccountNumber != "" {
		out.CustomerAccountNumber = server.CustomerAccountNumber
	}
	if server.FirstName != "" {
		out.FirstName = server.FirstName
	}
	if server.LastName != "" {
		out.LastName = server.LastName
	}
	if server.ContactNumber != "" {
		out.ContactNumber = server.ContactNumber
	}
	if server.Address != "" {
		out.Address = server.Address
	}
	if server.Email != "" {
		out.Email = server.Email
	}
	if server.AccountType != "" {
		out.AccountType = server.AccountType
	}
	return out
}
