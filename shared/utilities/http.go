package utilities

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/todo-api/shared/apperror"
)

const (
	HeaderContentType   = "Content-Type"
	ContentTypeJSONUTF8 = "application/json; charset=utf-8"

	// FallbackErrorMessage is shown for faults that carry no client-safe message.
	FallbackErrorMessage = "Something went wrong"
)

// MessageResponse is the body of every message-only response.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes v as the JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set(HeaderContentType, ContentTypeJSONUTF8)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"` + FallbackErrorMessage + `"}`))
		return
	}

	w.Header().Set(HeaderContentType, ContentTypeJSONUTF8)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// WriteMessage writes {"message": message} with the given status.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Message: message})
}

// WriteError maps err to a status through its apperror kind. Only messages of
// classified errors reach the client; internal faults are logged.
func WriteError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	kind := apperror.KindOf(err)
	status := kind.HTTPStatus()

	message := FallbackErrorMessage
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}

	if logger != nil {
		event := logger.Debug()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.Err(err).Str("kind", kind.String()).Int("status", status).Msg("request failed")
	}

	WriteMessage(w, status, message)
}

// DecodeJSON decodes the request body into v. A malformed or empty body is
// reported as a BadRequest.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Wrap(apperror.KindBadRequest, apperror.ErrMissingFields.Message, err)
		}
		return apperror.Wrap(apperror.KindBadRequest, "Invalid request body", err)
	}
	return nil
}
