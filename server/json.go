package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/writewithwrabit/journal/resolvers"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, resolvers.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, resolvers.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, resolvers.ErrBadInput):
		return http.StatusBadRequest
	case errors.Is(err, resolvers.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError hides the details of unexpected failures from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		message = http.StatusText(status)
	}

	writeJSON(w, status, map[string]string{"error": message})
}

// respond writes v, or the error when there is one.
func respond(w http.ResponseWriter, r *http.Request, v interface{}, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", resolvers.ErrBadInput, err)
	}
	return nil
}
