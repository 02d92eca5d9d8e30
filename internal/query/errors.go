package query

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mwhitfield/clavier/internal/api"
)

// fallbackMessage is surfaced when a caught error carries no usable message,
// such as a transport failure that never produced a response.
const fallbackMessage = "Unexpected error"

// Describe extracts the user-facing message and HTTP status from a caught
// error. Typed [api.Error] values keep their own status and message;
// anything else is treated as a 500-equivalent with a generic message.
func Describe(err error) (message string, statusCode int) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message, apiErr.StatusCode
	}
	return fallbackMessage, http.StatusInternalServerError
}

// Handler is the single error-propagation point of the system. Every
// controller routes caught errors through it rather than inlining status
// checks, so a backend-wide session expiry is handled the same way by every
// feature.
type Handler struct {
	// Toast surfaces an error-type notification to the user. Required for
	// the policy to be visible; nil is tolerated for headless use.
	Toast func(message string)

	Logger *log.Logger
}

// Handle applies the policy to a caught error: the message is always
// surfaced as a toast, and a 401 additionally invokes onUnauthorized once,
// after the toast, so the message is not lost to the navigation the
// callback typically performs. No other status receives special handling.
func (h *Handler) Handle(err error, onUnauthorized func()) {
	if err == nil {
		return
	}

	message, statusCode := Describe(err)

	if h.Logger != nil {
		h.Logger.Error("request failed", "status", statusCode, "error", err)
	}
	if h.Toast != nil {
		h.Toast(message)
	}

	if statusCode == http.StatusUnauthorized && onUnauthorized != nil {
		onUnauthorized()
	}
}
