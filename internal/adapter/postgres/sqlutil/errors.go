package sqlutil

import (
	"errors"
	"strings"

	"github.com/lib/pq"

	"gitlab.com/wizardhub.net/internal/static/errs"
)

const uniqueViolation = "23505"

// TranslateError maps driver errors the services care about. Others pass through.
func TranslateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return &errs.DuplicateKeyError{Field: fieldFromConstraint(pqErr.Constraint)}
	}
	return err
}

// fieldFromConstraint turns "users_external_uid_key" into "externalUid"
func fieldFromConstraint(constraint string) string {
	if strings.HasSuffix(constraint, "_pkey") {
		return "id"
	}
	name := strings.TrimSuffix(constraint, "_key")
	if i := strings.Index(name, "_"); i >= 0 {
		name = name[i+1:]
	}

	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
