package models

import "time"

// Product mirrors the upstream catalog record. ProductImage may be a ready
// URL or a legacy Windows filesystem path that still needs rewriting into a
// media-server URL before display.
type Product struct {
	ProductID    string  `json:"productID"`
	ProductName  string  `json:"productName"`
	Price        float64 `json:"price"`
	OldPrice     float64 `json:"oldPrice"`
	ProductImage string  `json:"productImage"`
	ShowRoomName string  `json:"showRoomName"`
	DateCreated  string  `json:"dateCreated"`
}

var dateCreatedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// CreatedAt parses the upstream dateCreated value, which arrives in a few
// different shapes. Unparseable values map to the zero time so they sort
// after every dated record.
func (p Product) CreatedAt() time.Time {
	for _, layout := range dateCreatedLayouts {
		if t, err := time.Parse(layout, p.DateCreated); err == nil {
			return t
		}
	}
	return time.Time{}
}
