package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/terra-clan/product-catalog/internal/catalog"
	"github.com/terra-clan/product-catalog/internal/models"
)

// Client is a Go SDK for the catalog-service API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new catalog-service client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ImportResult describes a successful dataset upload.
type ImportResult struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Format  string `json:"format"`
}

// ImportError carries the upload failure payload: the message and, for
// validation failures, the full ordered list of row errors.
type ImportError struct {
	StatusCode int
	Message    string   `json:"error"`
	Details    []string `json:"details"`
}

func (e *ImportError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("import failed (HTTP %d): %s (%d errors)", e.StatusCode, e.Message, len(e.Details))
	}
	return fmt.Sprintf("import failed (HTTP %d): %s", e.StatusCode, e.Message)
}

// CompareState is the compare selection with its comparison table.
type CompareState struct {
	SessionID string           `json:"sessionId,omitempty"`
	Added     bool             `json:"added,omitempty"`
	IDs       []int            `json:"ids"`
	Products  []CompareProduct `json:"products,omitempty"`
}

// CompareProduct is one column of the comparison table.
type CompareProduct struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	StockStatus string  `json:"stockStatus"`
	Category    string  `json:"category"`
}

// Import uploads a dataset file. The format is detected from filename's
// extension on the server; any validation failure is returned as an
// *ImportError with the accumulated row errors.
func (c *Client) Import(ctx context.Context, filename string, data io.Reader) (*ImportResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("products", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(fw, data); err != nil {
		return nil, fmt.Errorf("failed to copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/import", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		importErr := &ImportError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, importErr); err != nil {
			importErr.Message = string(respBody)
		}
		return nil, importErr
	}

	var result ImportResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// Products retrieves one catalog page for the given query state.
func (c *Client) Products(ctx context.Context, query models.Query) (*catalog.View, error) {
	path := "/api/v1/products"
	if qs := query.Values().Encode(); qs != "" {
		path += "?" + qs
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool          `json:"success"`
		Data    *catalog.View `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
	}

	return result.Data, nil
}

// Categories retrieves the distinct categories in dataset order.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/categories", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool `json:"success"`
		Data    struct {
			Categories []string `json:"categories"`
			Total      int      `json:"total"`
		} `json:"data"`
		Error *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
	}

	return result.Data.Categories, nil
}

// CreateCompareSession mints a new compare session.
func (c *Client) CreateCompareSession(ctx context.Context) (*CompareState, error) {
	return c.compareRequest(ctx, http.MethodPost, "/api/v1/compare/sessions", nil)
}

// Compare retrieves the comparison table of a session.
func (c *Client) Compare(ctx context.Context, sessionID string) (*CompareState, error) {
	return c.compareRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/compare/%s", sessionID), nil)
}

// ToggleCompare flips a product in and out of the compare selection.
func (c *Client) ToggleCompare(ctx context.Context, sessionID string, productID int) (*CompareState, error) {
	body, err := json.Marshal(map[string]int{"id": productID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.compareRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/compare/%s/toggle", sessionID), bytes.NewReader(body))
}

// ClearCompare empties the compare selection.
func (c *Client) ClearCompare(ctx context.Context, sessionID string) (*CompareState, error) {
	return c.compareRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/compare/%s", sessionID), nil)
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	return err
}

func (c *Client) compareRequest(ctx context.Context, method, path string, body io.Reader) (*CompareState, error) {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool          `json:"success"`
		Data    *CompareState `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
	}

	return result.Data, nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
