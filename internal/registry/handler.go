package registry

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// Binding is the body of a bind request and of a lookup response
type Binding struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Handler serves a Registry over HTTP
type Handler struct {
	registry Registry
}

// NewHandler creates a directory handler
func NewHandler(registry Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes sets up HTTP routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/registry", h.List).Methods("GET")
	router.HandleFunc("/registry/{name}", h.Lookup).Methods("GET")
	router.HandleFunc("/registry/{name}", h.Bind).Methods("PUT")
	router.HandleFunc("/registry/{name}", h.Unbind).Methods("DELETE")
}

// List returns every binding
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	bindings, err := h.registry.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bindings)
}

// Lookup returns the address bound to a name
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	addr, err := h.registry.Lookup(r.Context(), name)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Binding{Name: name, Address: addr})
}

// Bind binds a name to the address in the request body
func (h *Handler) Bind(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req Binding
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.registry.Bind(r.Context(), name, req.Address); err != nil {
		h.fail(w, err)
		return
	}

	slog.Info("Name bound", "name", name, "address", req.Address)
	writeJSON(w, http.StatusOK, Binding{Name: name, Address: req.Address})
}

// Unbind removes the binding for a name
func (h *Handler) Unbind(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.registry.Unbind(r.Context(), name); err != nil {
		h.fail(w, err)
		return
	}

	slog.Info("Name unbound", "name", name)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNameNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidBinding):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("Registry request failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
