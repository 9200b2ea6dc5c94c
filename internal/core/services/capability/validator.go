// Package capability checks a job's requirements against a wizard's declared capabilities.
package capability

import (
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

// ValidateAssignment reports the first capability the worker lacks, subject before language
func ValidateAssignment(worker *domain.User, subject domain.Subject, language domain.Language) error {
	if !domain.HasSubject(worker.Subjects, subject) {
		return &errs.CapabilityError{Kind: errs.CapabilityMissingSubject, WorkerID: worker.ID}
	}
	if !domain.HasLanguage(worker.Languages, language) {
		return &errs.CapabilityError{Kind: errs.CapabilityMissingLanguage, WorkerID: worker.ID}
	}
	return nil
}

// Guard is the store predicate equivalent of ValidateAssignment
func Guard(subject domain.Subject, language domain.Language) domain.UserQuery {
	return domain.UserQuery{
		HasSubject:  &subject,
		HasLanguage: &language,
		IsDisabled:  domain.Ptr(false),
	}
}
