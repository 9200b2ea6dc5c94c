package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

func TestValidateAssignment(t *testing.T) {
	worker := &domain.User{
		ID:        "w1",
		Subjects:  []domain.Subject{domain.SubjectMath, domain.SubjectPhysics},
		Languages: []domain.Language{domain.LanguageEnglish},
	}

	tests := []struct {
		name     string
		subject  domain.Subject
		language domain.Language
		wantKind errs.CapabilityKind
	}{
		{"capable", domain.SubjectMath, domain.LanguageEnglish, ""},
		{"second subject", domain.SubjectPhysics, domain.LanguageEnglish, ""},
		{"missing subject", domain.SubjectArt, domain.LanguageEnglish, errs.CapabilityMissingSubject},
		{"missing language", domain.SubjectMath, domain.LanguageFrench, errs.CapabilityMissingLanguage},
		{"subject reported first", domain.SubjectArt, domain.LanguageFrench, errs.CapabilityMissingSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssignment(worker, tt.subject, tt.language)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			kind, ok := errs.CapabilityKindOf(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestGuardAgreesWithValidateAssignment(t *testing.T) {
	worker := &domain.User{
		ID:        "w1",
		Subjects:  []domain.Subject{domain.SubjectMath},
		Languages: []domain.Language{domain.LanguageEnglish},
	}

	assert.True(t, Guard(domain.SubjectMath, domain.LanguageEnglish).Matches(worker))
	assert.False(t, Guard(domain.SubjectArt, domain.LanguageEnglish).Matches(worker))
	assert.False(t, Guard(domain.SubjectMath, domain.LanguageGerman).Matches(worker))

	worker.IsDisabled = true
	assert.False(t, Guard(domain.SubjectMath, domain.LanguageEnglish).Matches(worker))
}
