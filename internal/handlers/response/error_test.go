package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", err: errs.NotFound(errs.EntityWizard, "w1"), wantStatus: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", errs.NotFound(errs.EntityJob, "j1")), wantStatus: http.StatusNotFound},
		{name: "merged job error", err: &errs.NotFoundOrUnauthorizedError{JobID: "j", WorkerID: "w"}, wantStatus: http.StatusNotFound},
		{name: "validation", err: errs.Invalid("price", "must be greater than zero"), wantStatus: http.StatusBadRequest},
		{name: "capability", err: &errs.CapabilityError{Kind: errs.CapabilityMissingSubject}, wantStatus: http.StatusUnprocessableEntity},
		{name: "duplicate email", err: &errs.DuplicateKeyError{Field: "email"}, wantStatus: http.StatusConflict, wantMsg: "mail already exists"},
		{name: "duplicate uid", err: &errs.DuplicateKeyError{Field: "externalUid"}, wantStatus: http.StatusConflict},
		{name: "bad credentials", err: errs.InvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "forbidden", err: errs.Forbidden, wantStatus: http.StatusForbidden},
		{name: "unknown", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, got.Message)
			}
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteServiceError(rec, errs.NotFound(errs.EntityUser, "u1"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.StatusCode)
	assert.Contains(t, body.Message, "u1")
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, domain.LoginResponse{Token: "t"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"t"}`, rec.Body.String())
}
