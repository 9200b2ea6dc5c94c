package sqlutil

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
	querybuilder "gitlab.com/wizardhub.net/internal/utils"
)

func TestApplyUserQuery(t *testing.T) {
	subject := domain.SubjectMath
	q := domain.UserQuery{
		ID:                 domain.Ptr("w1"),
		IsWizard:           domain.Ptr(true),
		IsDisabled:         domain.Ptr(false),
		ExcludeAdmin:       true,
		AnyLanguages:       []domain.Language{domain.LanguageEnglish},
		HasSubject:         &subject,
		ExpJobsGreaterThan: domain.Ptr(0),
	}

	qb := querybuilder.NewQueryBuilder("public").Select("id").From("users")
	query, args := ApplyUserQuery(qb, q, "").Build()

	assert.Equal(t,
		"SELECT id FROM public.users WHERE id = ? AND is_wizard = ? AND is_disabled = ? AND role <> ? "+
			"AND languages && ?::text[] AND ?::text = ANY(subjects) AND exp_jobs > ?",
		query)
	require.Len(t, args, 7)
	assert.Equal(t, "w1", args[0])
	assert.Equal(t, "admin", args[3])
	assert.Equal(t, pq.Array([]string{"English"}), args[4])
	assert.Equal(t, "Math", args[5])
}

func TestApplyUserQuery_EmptyFilterSliceStillApplies(t *testing.T) {
	qb := querybuilder.NewQueryBuilder("").Select("id").From("users")
	query, _ := ApplyUserQuery(qb, domain.UserQuery{AnySubjects: []domain.Subject{}}, "u.").Build()
	assert.Equal(t, "SELECT id FROM users WHERE u.subjects && ?::text[]", query)
}

func TestApplySort(t *testing.T) {
	tests := []struct {
		name string
		sort domain.Sort
		want string
	}{
		{name: "natural", sort: domain.Sort{}, want: "SELECT id FROM users ORDER BY created_at ASC, id ASC"},
		{
			name: "reviews desc",
			sort: domain.Sort{Field: domain.SortFieldReviews, Order: domain.SortDesc},
			want: "SELECT id FROM users ORDER BY reviews DESC, created_at ASC, id ASC",
		},
		{
			name: "exp jobs asc",
			sort: domain.Sort{Field: domain.SortFieldExpJobs, Order: domain.SortAsc},
			want: "SELECT id FROM users ORDER BY exp_jobs ASC, created_at ASC, id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := querybuilder.NewQueryBuilder("").Select("id").From("users")
			query, _ := ApplySort(qb, tt.sort).Build()
			assert.Equal(t, tt.want, query)
		})
	}
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		constraint string
		wantField  string
	}{
		{constraint: "users_email_key", wantField: "email"},
		{constraint: "users_external_uid_key", wantField: "externalUid"},
		{constraint: "jobs_pkey", wantField: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			err := TranslateError(&pq.Error{Code: "23505", Constraint: tt.constraint})
			var dup *errs.DuplicateKeyError
			require.ErrorAs(t, err, &dup)
			assert.Equal(t, tt.wantField, dup.Field)
		})
	}

	other := errors.New("connection reset")
	assert.Same(t, other, TranslateError(other))

	fk := &pq.Error{Code: "23503"}
	assert.False(t, errs.IsDuplicateKey(TranslateError(fk)))
}
