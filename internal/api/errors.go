// ABOUTME: Error taxonomy for FitForge API calls.
// ABOUTME: Network failures, expired auth, and server rejections are told apart by Classify.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/harperreed/fitforge/internal/models"
)

var (
	// ErrNetwork wraps transport failures where no response arrived.
	ErrNetwork = errors.New("network error")
	// ErrUnauthorized is returned for 401 responses or a missing token.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response other than 401.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

// Kind names an error class the UI reacts to.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNetwork
	KindAuth
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Classify maps err to its Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}
	if errors.Is(err, ErrUnauthorized) {
		return KindAuth
	}
	if errors.Is(err, ErrNetwork) {
		return KindNetwork
	}
	var aerr *APIError
	if errors.As(err, &aerr) {
		return KindServer
	}
	return KindUnknown
}
