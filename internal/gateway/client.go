package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"storefront/client/internal/config"
	"storefront/client/internal/ids"
	"storefront/client/internal/models"
)

const (
	pathCustomerPost = "/Users/Customer-Post"
	pathCustomerGet  = "/Users/Customer-Get"
	pathProductGet   = "/Products/Product-Get"

	requestIDHeader = "X-Request-Id"

	// responseAccepted is the upstream payload code for an accepted write.
	responseAccepted = "1"

	maxBodyBytes = 8 << 20
)

// Client is the typed HTTP boundary to the storefront backend. It holds no
// state beyond connection plumbing.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        zerolog.Logger
}

func New(cfg config.GatewayConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		log:        logger,
	}
}

type createCustomerResponse struct {
	ResponseCode string `json:"ResponseCode"`
	Message      string `json:"message"`
	models.Customer
}

// CreateCustomer posts a new customer record. A 2xx response whose payload
// code is not "1" is a logical rejection and fails with the payload message.
// On acceptance the server-assigned fields are merged over the client input.
func (c *Client) CreateCustomer(ctx context.Context, input models.Customer) (models.Customer, error) {
	var resp createCustomerResponse
	if err := c.do(ctx, http.MethodPost, pathCustomerPost, input, &resp); err != nil {
		return models.Customer{}, err
	}

	if resp.ResponseCode != responseAccepted {
		message := resp.Message
		if message == "" {
			message = "Failed to create customer."
		}
		return models.Customer{}, Rejected(message)
	}

	return input.Merge(resp.Customer), nil
}

// ListCustomers retrieves the full customer collection.
func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := c.do(ctx, http.MethodGet, pathCustomerGet, nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// ListProducts retrieves the whole catalog in one response; the upstream
// endpoint is not paginated.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, pathProductGet, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Transport(fmt.Errorf("marshal request body: %w", err))
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return Transport(fmt.Errorf("create request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := ids.RequestID()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).
			Str("request_id", requestID).Msg("gateway request failed")
		return Transport(err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Str("request_id", requestID).
		Msg("gateway request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Transport(fmt.Errorf("request failed with status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Transport(fmt.Errorf("read response body: %w", err))
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return Transport(fmt.Errorf("decode response: %w", err))
	}
	return nil
}
