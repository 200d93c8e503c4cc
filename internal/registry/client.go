package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to a directory server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Registry = (*Client)(nil)

// NewClient creates a client for the directory at host:port
func NewClient(host string, port int) *Client {
	return &Client{
		baseURL: "http://" + net.JoinHostPort(host, strconv.Itoa(port)),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Bind binds name to addr
func (c *Client) Bind(ctx context.Context, name, addr string) error {
	return c.do(ctx, "PUT", name, Binding{Name: name, Address: addr}, http.StatusOK, nil)
}

// Lookup returns the address bound to name
func (c *Client) Lookup(ctx context.Context, name string) (string, error) {
	var binding Binding
	if err := c.do(ctx, "GET", name, nil, http.StatusOK, &binding); err != nil {
		return "", err
	}
	return binding.Address, nil
}

// Unbind removes the binding for name
func (c *Client) Unbind(ctx context.Context, name string) error {
	return c.do(ctx, "DELETE", name, nil, http.StatusNoContent, nil)
}

// List returns every binding in the directory
func (c *Client) List(ctx context.Context) (map[string]string, error) {
	var bindings map[string]string
	if err := c.do(ctx, "GET", "", nil, http.StatusOK, &bindings); err != nil {
		return nil, err
	}
	return bindings, nil
}

func (c *Client) do(ctx context.Context, method, name string, body any, wantStatus int, out any) error {
	target := c.baseURL + "/registry"
	if name != "" {
		target += "/" + url.PathEscape(name)
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case wantStatus:
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNameNotFound, name)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidBinding, name)
	default:
		return fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUnreachable, err)
	}
	return nil
}
