package errs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindsSurviveWrapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", NotFound(EntityWorker, "w1"), IsNotFound},
		{"validation", Invalid("price", "must be positive"), IsValidation},
		{"duplicate", &DuplicateKeyError{Field: "email"}, IsDuplicateKey},
		{"merged", &NotFoundOrUnauthorizedError{JobID: "j", WorkerID: "w"}, IsNotFoundOrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("failed to do thing: %w", tt.err)
			assert.True(t, tt.check(wrapped))
		})
	}
}

func TestCapabilityKindOf(t *testing.T) {
	kind, ok := CapabilityKindOf(fmt.Errorf("create: %w", &CapabilityError{Kind: CapabilityMissingLanguage}))
	assert.True(t, ok)
	assert.Equal(t, CapabilityMissingLanguage, kind)

	_, ok = CapabilityKindOf(NotFound(EntityJob, "x"))
	assert.False(t, ok)
}

func TestMergedErrorDoesNotLeakWhichHalfFailed(t *testing.T) {
	err := &NotFoundOrUnauthorizedError{JobID: "job-1", WorkerID: "worker-9"}
	assert.NotContains(t, err.Error(), "job-1")
	assert.NotContains(t, err.Error(), "worker-9")
}
