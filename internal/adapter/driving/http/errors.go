package httphandler

import (
	"errors"
	"net/http"

	"github.com/ericfisherdev/tasteofthebes/internal/application"
)

// statusForError maps an application error kind to its HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, application.ErrInvalidArgument), errors.Is(err, application.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes the envelope for a failed service call. Caller
// errors carry their detail as the message, validation failures keep the
// operation message and put the detail in error. Internal faults are logged
// and their text never reaches the response.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := statusForError(err)
	switch {
	case status == http.StatusInternalServerError:
		h.logger.Error(message, "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, status, message, "internal server error")
	case errors.Is(err, application.ErrValidation):
		writeError(w, status, message, application.Detail(err))
	default:
		writeError(w, status, application.Detail(err), "")
	}
}
