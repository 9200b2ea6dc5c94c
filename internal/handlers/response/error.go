package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/wizardhub.net/internal/static/errs"
)

type ErrorMessage struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// FromError maps service errors to a status code. Unknown errors become a 500
// without leaking their text.
func FromError(err error) ErrorMessage {
	var dup *errs.DuplicateKeyError
	switch {
	case errs.IsNotFound(err):
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusNotFound}
	case errs.IsNotFoundOrUnauthorized(err):
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusNotFound}
	case errs.IsValidation(err):
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadRequest}
	case isCapability(err):
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusUnprocessableEntity}
	case errors.As(err, &dup):
		msg := err.Error()
		if dup.Field == "email" {
			msg = "mail already exists"
		}
		return ErrorMessage{Message: msg, StatusCode: http.StatusConflict}
	case errors.Is(err, errs.InvalidCredentials), errors.Is(err, errs.AccountDisabled):
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusUnauthorized}
	case errors.Is(err, errs.EmailRequired):
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadRequest}
	case errors.Is(err, errs.Forbidden):
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusForbidden}
	}
	return ErrorMessage{Message: "internal server error", StatusCode: http.StatusInternalServerError}
}

func isCapability(err error) bool {
	_, ok := errs.CapabilityKindOf(err)
	return ok
}

// WriteServiceError writes the mapped error for err
func WriteServiceError(w http.ResponseWriter, err error) {
	WriteError(w, FromError(err))
}
