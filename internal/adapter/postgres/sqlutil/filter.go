// Package sqlutil holds the SQL pieces shared by the postgres repositories
package sqlutil

import (
	"fmt"

	"github.com/lib/pq"

	"gitlab.com/wizardhub.net/internal/domain"
	querybuilder "gitlab.com/wizardhub.net/internal/utils"
)

// ApplyUserQuery adds one condition per set predicate of q. prefix qualifies
// the users columns ("" or "u.").
func ApplyUserQuery(qb querybuilder.QueryBuilder, q domain.UserQuery, prefix string) querybuilder.QueryBuilder {
	tbl := domain.GetUserTable()
	col := func(name string) string { return prefix + name }

	if q.ID != nil {
		qb.Where(fmt.Sprintf("%s = ?", col(tbl.ID)), *q.ID)
	}
	if q.Email != nil {
		qb.Where(fmt.Sprintf("lower(%s) = lower(?)", col(tbl.Email)), *q.Email)
	}
	if q.ExternalUID != nil {
		qb.Where(fmt.Sprintf("%s = ?", col(tbl.ExternalUID)), *q.ExternalUID)
	}
	if q.IsWizard != nil {
		qb.Where(fmt.Sprintf("%s = ?", col(tbl.IsWizard)), *q.IsWizard)
	}
	if q.IsDisabled != nil {
		qb.Where(fmt.Sprintf("%s = ?", col(tbl.IsDisabled)), *q.IsDisabled)
	}
	if q.ExcludeAdmin {
		qb.Where(fmt.Sprintf("%s <> ?", col(tbl.Role)), string(domain.RoleAdmin))
	}
	if q.AnySubjects != nil {
		qb.Where(fmt.Sprintf("%s && ?::text[]", col(tbl.Subjects)), pq.Array(domain.SubjectStrings(q.AnySubjects)))
	}
	if q.AnyLanguages != nil {
		qb.Where(fmt.Sprintf("%s && ?::text[]", col(tbl.Languages)), pq.Array(domain.LanguageStrings(q.AnyLanguages)))
	}
	if q.HasSubject != nil {
		qb.Where(fmt.Sprintf("?::text = ANY(%s)", col(tbl.Subjects)), string(*q.HasSubject))
	}
	if q.HasLanguage != nil {
		qb.Where(fmt.Sprintf("?::text = ANY(%s)", col(tbl.Languages)), string(*q.HasLanguage))
	}
	if q.ExpJobsGreaterThan != nil {
		qb.Where(fmt.Sprintf("%s > ?", col(tbl.ExpJobs)), *q.ExpJobsGreaterThan)
	}
	return qb
}

// ApplySort orders by s, then by creation so ties are stable
func ApplySort(qb querybuilder.QueryBuilder, s domain.Sort) querybuilder.QueryBuilder {
	tbl := domain.GetUserTable()
	if s.IsSet() {
		field := tbl.Reviews
		if s.Field == domain.SortFieldExpJobs {
			field = tbl.ExpJobs
		}
		qb.OrderBy(field, s.Order == domain.SortAsc)
	}
	return qb.OrderBy(tbl.CreatedAt, true).OrderBy(tbl.ID, true)
}
