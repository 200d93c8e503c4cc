package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"car-rental/internal/rental"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Error codes carried in ErrorResponse.Error
const (
	CodeInvalidWindow      = "invalid_window"
	CodeUnknownCarType     = "unknown_car_type"
	CodeNoCarAvailable     = "no_car_available"
	CodeQuoteNoLongerValid = "quote_no_longer_valid"
	CodeInvalidRequest     = "invalid_request"
	CodeInternal           = "internal_error"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CreateQuoteRequest represents a quote request
type CreateQuoteRequest struct {
	Constraints rental.ReservationConstraints `json:"constraints"`
	ClientName  string                        `json:"client_name"`
}

// HTTPHandler handles HTTP requests for one rental company
type HTTPHandler struct {
	company  rental.Company
	gatherer prometheus.Gatherer
}

// NewHTTPHandler creates a new HTTP handler. /metrics is served only when
// gatherer is non-nil.
func NewHTTPHandler(company rental.Company, gatherer prometheus.Gatherer) *HTTPHandler {
	return &HTTPHandler{
		company:  company,
		gatherer: gatherer,
	}
}

// RegisterRoutes sets up HTTP routes
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods("GET")
	router.HandleFunc("/cartypes/available", h.GetAvailableCarTypes).Methods("GET")
	router.HandleFunc("/quotes", h.CreateQuote).Methods("POST")
	router.HandleFunc("/reservations", h.ConfirmQuote).Methods("POST")
	router.HandleFunc("/reservations", h.GetReservations).Methods("GET")
	if h.gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}
}

// Health returns service health status
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"company": h.company.Name(),
	})
}

// GetAvailableCarTypes lists the car types free for the requested window
func (h *HTTPHandler) GetAvailableCarTypes(w http.ResponseWriter, r *http.Request) {
	start, err := parseTimeParam(r, "start")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseTimeParam(r, "end")
	if err != nil {
		writeError(w, err)
		return
	}

	carTypes, err := h.company.GetAvailableCarTypes(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, carTypes)
}

// CreateQuote issues a non-binding quote
func (h *HTTPHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, invalidRequest("invalid JSON"))
		return
	}
	if req.ClientName == "" {
		writeError(w, invalidRequest("client_name is required"))
		return
	}

	quote, err := h.company.CreateQuote(r.Context(), req.Constraints, req.ClientName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, quote)
}

// ConfirmQuote turns a previously issued quote into a reservation
func (h *HTTPHandler) ConfirmQuote(w http.ResponseWriter, r *http.Request) {
	var quote rental.Quote
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		writeError(w, invalidRequest("invalid JSON"))
		return
	}
	if quote.ID == "" {
		writeError(w, invalidRequest("quote id is required"))
		return
	}

	reservation, err := h.company.ConfirmQuote(r.Context(), &quote)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reservation)
}

// GetReservations returns all confirmed reservations
func (h *HTTPHandler) GetReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.company.GetReservations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reservations)
}

type requestError struct {
	message string
}

func (e *requestError) Error() string { return e.message }

func invalidRequest(format string, args ...any) error {
	return &requestError{message: fmt.Sprintf(format, args...)}
}

func parseTimeParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, invalidRequest("missing %s parameter", name)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, invalidRequest("%s must be an RFC 3339 timestamp", name)
	}
	return t, nil
}

// StatusFor maps an error to its HTTP status and error code
func StatusFor(err error) (int, string) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, rental.ErrQuoteNoLongerValid):
		// checked before the causes it may wrap
		return http.StatusConflict, CodeQuoteNoLongerValid
	case errors.Is(err, rental.ErrInvalidWindow):
		return http.StatusBadRequest, CodeInvalidWindow
	case errors.Is(err, rental.ErrUnknownCarType):
		return http.StatusNotFound, CodeUnknownCarType
	case errors.Is(err, rental.ErrNoCarAvailable):
		return http.StatusConflict, CodeNoCarAvailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code := StatusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
