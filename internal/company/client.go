package company

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"car-rental/internal/handlers"
	"car-rental/internal/rental"
)

// ErrUnreachable reports a transport failure talking to a company. It is
// never returned for business rule violations.
var ErrUnreachable = errors.New("company unreachable")

// ErrInvalidRequest reports a request the company refused to parse
var ErrInvalidRequest = errors.New("invalid request")

var codeErrors = map[string]error{
	handlers.CodeInvalidWindow:      rental.ErrInvalidWindow,
	handlers.CodeUnknownCarType:     rental.ErrUnknownCarType,
	handlers.CodeNoCarAvailable:     rental.ErrNoCarAvailable,
	handlers.CodeQuoteNoLongerValid: rental.ErrQuoteNoLongerValid,
	handlers.CodeInvalidRequest:     ErrInvalidRequest,
}

// Resolver maps a company name to the base URL it is served on
type Resolver interface {
	Lookup(ctx context.Context, name string) (string, error)
}

// Client talks to a remote rental company over HTTP
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

var _ rental.Company = (*Client)(nil)

// NewClient creates a new company client
func NewClient(name, baseURL string) *Client {
	return &Client{
		name:    name,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Lookup resolves name through the registry and returns a client for it
func Lookup(ctx context.Context, resolver Resolver, name string) (*Client, error) {
	baseURL, err := resolver.Lookup(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve company %s: %w", name, err)
	}
	return NewClient(name, baseURL), nil
}

// Name returns the name the company was resolved under
func (c *Client) Name() string {
	return c.name
}

// GetAvailableCarTypes lists the car types the company has free for the window
func (c *Client) GetAvailableCarTypes(ctx context.Context, start, end time.Time) ([]rental.CarType, error) {
	params := url.Values{}
	params.Add("start", start.Format(time.RFC3339Nano))
	params.Add("end", end.Format(time.RFC3339Nano))

	var carTypes []rental.CarType
	if err := c.do(ctx, "GET", "/cartypes/available?"+params.Encode(), nil, http.StatusOK, &carTypes); err != nil {
		return nil, err
	}
	return carTypes, nil
}

// CreateQuote asks the company for a quote
func (c *Client) CreateQuote(ctx context.Context, constraints rental.ReservationConstraints, clientName string) (*rental.Quote, error) {
	req := handlers.CreateQuoteRequest{
		Constraints: constraints,
		ClientName:  clientName,
	}

	var quote rental.Quote
	if err := c.do(ctx, "POST", "/quotes", req, http.StatusCreated, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// ConfirmQuote asks the company to turn a quote into a reservation
func (c *Client) ConfirmQuote(ctx context.Context, quote *rental.Quote) (*rental.Reservation, error) {
	var reservation rental.Reservation
	if err := c.do(ctx, "POST", "/reservations", quote, http.StatusCreated, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetReservations returns every reservation the company holds
func (c *Client) GetReservations(ctx context.Context) ([]rental.Reservation, error) {
	var reservations []rental.Reservation
	if err := c.do(ctx, "GET", "/reservations", nil, http.StatusOK, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
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

	if resp.StatusCode != wantStatus {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUnreachable, err)
	}
	return nil
}

// decodeError rebuilds the business error a company reported. Anything the
// client cannot classify is a transport failure.
func decodeError(resp *http.Response) error {
	var errResp handlers.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	if sentinel, ok := codeErrors[errResp.Error]; ok {
		return fmt.Errorf("%w: %s", sentinel, errResp.Message)
	}
	return fmt.Errorf("%w: status %d: %s", ErrUnreachable, resp.StatusCode, errResp.Message)
}
