package notes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Client talks to a remote note store.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the store at baseURL, e.g.
// "http://localhost:8080". A zero timeout means no timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the store address the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// List fetches every note.
func (c *Client) List(ctx context.Context) ([]Note, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/note/list", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, "list")
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Add creates a note with the given title.
func (c *Client) Add(ctx context.Context, title string) error {
	return c.post(ctx, "add", addRequest{Title: title})
}

// Edit renames note id.
func (c *Client) Edit(ctx context.Context, id int64, title string) error {
	return c.post(ctx, "edit", editRequest{ID: id, Title: title})
}

// Delete removes note id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.post(ctx, "delete", deleteRequest{ID: id})
}

func (c *Client) post(ctx context.Context, op string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("notes: encode %s request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/note/"+op, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = c.do(req, op)
	return err
}

func (c *Client) do(req *http.Request, op string) (*Response, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notes: %s: %w", op, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("notes: %s: read body: %w", op, err)
	}
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("notes: %s: decode response (HTTP %d): %w", op, res.StatusCode, err)
	}
	if resp.Code != CodeOK {
		return nil, &StatusError{Op: op, Code: resp.Code, Msg: resp.Msg}
	}
	return &resp, nil
}
