package errs

import (
	"errors"
	"fmt"
)

const (
	EntityUser   = "user"
	EntityWorker = "worker"
	EntityWizard = "wizard"
	EntityJob    = "job"
)

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Entity, e.ID)
}

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

type CapabilityKind string

const (
	CapabilityMissingSubject  CapabilityKind = "missingSubject"
	CapabilityMissingLanguage CapabilityKind = "missingLanguage"
)

type CapabilityError struct {
	Kind     CapabilityKind
	WorkerID string
}

func (e *CapabilityError) Error() string {
	switch e.Kind {
	case CapabilityMissingSubject:
		return "worker does not have the specified subject"
	case CapabilityMissingLanguage:
		return "worker does not have the specified language"
	}
	return "worker is not capable of this job"
}

type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// NotFoundOrUnauthorizedError does not reveal whether the job is missing or
// assigned to someone else.
type NotFoundOrUnauthorizedError struct {
	JobID    string
	WorkerID string
}

func (e *NotFoundOrUnauthorizedError) Error() string {
	return "job not found or worker is not assigned to the job"
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsDuplicateKey(err error) bool {
	var dk *DuplicateKeyError
	return errors.As(err, &dk)
}

func IsNotFoundOrUnauthorized(err error) bool {
	var nu *NotFoundOrUnauthorizedError
	return errors.As(err, &nu)
}

// CapabilityKindOf returns the capability failure kind wrapped in err, if any
func CapabilityKindOf(err error) (CapabilityKind, bool) {
	var ce *CapabilityError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}
