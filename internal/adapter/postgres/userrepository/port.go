package userrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/wizardhub.net/internal/adapter/postgres/sqlutil"
	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/ports/secondary"
	"gitlab.com/wizardhub.net/internal/domain"
	querybuilder "gitlab.com/wizardhub.net/internal/utils"
)

var _ secondary.UserStore = &userRepo{}

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.UserStore {
	return &userRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (u userRepo) Get(ctx context.Context, id string) (*domain.User, error) {
	return u.FindOne(ctx, domain.UserQuery{ID: &id}, domain.ProjectionFull)
}

func (u userRepo) FindOne(ctx context.Context, query domain.UserQuery, projection domain.Projection) (*domain.User, error) {
	q, args := buildFind(u.schema, query, domain.FindOptions{Projection: projection, Limit: 1})

	var row userRow
	err := u.db.GetContext(ctx, &row, sqlx.Rebind(sqlx.DOLLAR, q), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return projection.Apply(row.toDomain()), nil
}

func (u userRepo) FindMany(ctx context.Context, query domain.UserQuery, opts domain.FindOptions) ([]*domain.User, error) {
	q, args := buildFind(u.schema, query, opts)

	var rows []userRow
	if err := u.db.SelectContext(ctx, &rows, sqlx.Rebind(sqlx.DOLLAR, q), args...); err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, opts.Projection.Apply(row.toDomain()))
	}
	return users, nil
}

func buildFind(schema string, query domain.UserQuery, opts domain.FindOptions) (string, []interface{}) {
	qb := querybuilder.NewQueryBuilder(schema).
		Select(projectionColumns(opts.Projection)...).
		From(domain.GetUserTable().GetTableName())
	sqlutil.ApplyUserQuery(qb, query, "")
	sqlutil.ApplySort(qb, opts.Sort)
	return qb.Limit(opts.Limit).Offset(opts.Skip).Build()
}

func (u userRepo) Count(ctx context.Context, query domain.UserQuery) (int, error) {
	qb := querybuilder.NewQueryBuilder(u.schema).
		Select("COUNT(*)").
		From(domain.GetUserTable().GetTableName())
	q, args := sqlutil.ApplyUserQuery(qb, query, "").Build()

	var n int
	if err := u.db.GetContext(ctx, &n, sqlx.Rebind(sqlx.DOLLAR, q), args...); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (u userRepo) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	q, args := buildInsert(u.schema, user)

	var row userRow
	err := u.db.GetContext(ctx, &row, sqlx.Rebind(sqlx.DOLLAR, q), args...)
	if err != nil {
		return nil, sqlutil.TranslateError(err)
	}
	return row.toDomain(), nil
}

func buildInsert(schema string, user *domain.User) (string, []interface{}) {
	tbl := domain.GetUserTable()
	return querybuilder.NewQueryBuilder(schema).
		Insert(
			tbl.ID, tbl.Name, tbl.Email, tbl.Image, tbl.ExternalUID, tbl.Password, tbl.Role,
			tbl.IsWizard, tbl.IsDisabled, tbl.Subjects, tbl.Languages,
			tbl.ExpTitle, tbl.ExpOrigin, tbl.ExpYears, tbl.ExpJobs, tbl.Reviews, tbl.Calendar, tbl.CreatedAt,
		).
		Into(tbl.GetTableName()).
		Values(
			user.ID, user.Name, user.Email, user.Image, user.ExternalUID, user.PasswordHash, string(user.Role),
			user.IsWizard, user.IsDisabled,
			pq.Array(domain.SubjectStrings(user.Subjects)), pq.Array(domain.LanguageStrings(user.Languages)),
			user.Experience.Title, user.Experience.Origin, user.Experience.ExpYears, user.Experience.ExpJobs,
			user.Reviews, calendarValue(user.Calendar), user.CreatedAt,
		).
		Returning(allColumns()...).
		Build()
}

// ConditionalUpdate is one UPDATE statement, the row lock makes the
// predicate check and the write atomic.
func (u userRepo) ConditionalUpdate(ctx context.Context, query domain.UserQuery, patch domain.UserPatch) (*domain.User, error) {
	q, args := buildConditionalUpdate(u.schema, query, patch)
	if q == "" {
		return u.FindOne(ctx, query, domain.ProjectionFull)
	}

	var row userRow
	err := u.db.GetContext(ctx, &row, sqlx.Rebind(sqlx.DOLLAR, q), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user: %w", sqlutil.TranslateError(err))
	}
	return row.toDomain(), nil
}

func patchData(patch domain.UserPatch) querybuilder.UpdateData {
	tbl := domain.GetUserTable()
	data := querybuilder.UpdateData{}
	if patch.Name != nil {
		data[tbl.Name] = *patch.Name
	}
	if patch.Image != nil {
		data[tbl.Image] = *patch.Image
	}
	if patch.IsWizard != nil {
		data[tbl.IsWizard] = *patch.IsWizard
	}
	if patch.IsDisabled != nil {
		data[tbl.IsDisabled] = *patch.IsDisabled
	}
	if patch.Subjects != nil {
		data[tbl.Subjects] = pq.Array(domain.SubjectStrings(*patch.Subjects))
	}
	if patch.Languages != nil {
		data[tbl.Languages] = pq.Array(domain.LanguageStrings(*patch.Languages))
	}
	if patch.Experience != nil {
		data[tbl.ExpTitle] = patch.Experience.Title
		data[tbl.ExpOrigin] = patch.Experience.Origin
		data[tbl.ExpYears] = patch.Experience.ExpYears
	}
	if patch.Calendar != nil {
		data[tbl.Calendar] = calendarValue(*patch.Calendar)
	}
	if patch.IncExpJobs != 0 {
		data[tbl.ExpJobs] = querybuilder.NewExpr(tbl.ExpJobs+" + ?", patch.IncExpJobs)
	}
	return data
}

func buildConditionalUpdate(schema string, query domain.UserQuery, patch domain.UserPatch) (string, []interface{}) {
	data := patchData(patch)
	if len(data) == 0 {
		return "", nil
	}

	tbl := domain.GetUserTable()
	target := querybuilder.NewQueryBuilder(schema).
		Select(tbl.ID).
		From(tbl.GetTableName())
	sqlutil.ApplyUserQuery(target, query, "")
	sqlutil.ApplySort(target, domain.Sort{})
	targetSQL, targetArgs := target.Limit(1).Lock("UPDATE").Build()

	qb := querybuilder.NewQueryBuilder(schema).
		Update(tbl.GetTableName(), data).
		Where(fmt.Sprintf("%s = (%s)", tbl.ID, targetSQL), targetArgs...)
	// repeated so a concurrent writer that changed the row makes this a miss
	sqlutil.ApplyUserQuery(qb, query, "")
	return qb.Returning(allColumns()...).Build()
}

type summaryRow struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	Image   string  `db:"image"`
	ExpJobs int     `db:"exp_jobs"`
	Reviews float64 `db:"reviews"`
}

func (u userRepo) Aggregate(ctx context.Context, pipeline domain.Pipeline) ([]domain.WizardSummary, error) {
	q, args := buildAggregate(u.schema, pipeline)

	var rows []summaryRow
	if err := u.db.SelectContext(ctx, &rows, sqlx.Rebind(sqlx.DOLLAR, q), args...); err != nil {
		return nil, fmt.Errorf("failed to aggregate users: %w", err)
	}

	out := make([]domain.WizardSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, pipeline.Summarize(&domain.User{
			ID:         r.ID,
			Name:       r.Name,
			Image:      r.Image,
			Reviews:    r.Reviews,
			Experience: domain.Experience{ExpJobs: r.ExpJobs},
		}))
	}
	return out, nil
}

func buildAggregate(schema string, pipeline domain.Pipeline) (string, []interface{}) {
	tbl := domain.GetUserTable()
	qb := querybuilder.NewQueryBuilder(schema).
		Select(tbl.ID, tbl.Name, tbl.Image, tbl.ExpJobs, tbl.Reviews).
		From(tbl.GetTableName())
	sqlutil.ApplyUserQuery(qb, pipeline.Match, "")
	sqlutil.ApplySort(qb, pipeline.Sort)
	return qb.Limit(pipeline.Limit).Build()
}
