package client

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/idilsaglam/laptopstore/internal/apperror"
)

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if b := strings.TrimSpace(e.Body); b != "" {
		if len(b) > 200 {
			b = b[:197] + "..."
		}
		msg += ": " + b
	}
	return msg
}

// Unwrap lets callers test the status class with errors.Is.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return apperror.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperror.ErrValidation
	case http.StatusConflict:
		return apperror.ErrConflict
	}
	return nil
}
