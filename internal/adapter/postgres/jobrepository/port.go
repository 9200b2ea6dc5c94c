// Package jobrepository contains the PostgreSQL implementation of the job store
package jobrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gitlab.com/wizardhub.net/internal/adapter/postgres/sqlutil"
	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/ports/secondary"
	"gitlab.com/wizardhub.net/internal/domain"
	querybuilder "gitlab.com/wizardhub.net/internal/utils"
)

var _ secondary.JobStore = (*JobRepository)(nil)

// JobRepository implements the JobStore interface with PostgreSQL
type JobRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// NewJobRepository creates a new PostgreSQL job repository
func NewJobRepository(db *sqlx.DB, logger primary.Logger, schema string) *JobRepository {
	return &JobRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

type jobRow struct {
	ID           string          `db:"id"`
	Description  string          `db:"description"`
	Price        float64         `db:"price"`
	NumClasses   int             `db:"num_classes"`
	ClientID     string          `db:"client_id"`
	WorkerID     string          `db:"worker_id"`
	Subject      string          `db:"subject"`
	Language     string          `db:"language"`
	Status       string          `db:"status"`
	ClientReview sql.NullFloat64 `db:"client_review"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (r jobRow) toDomain() *domain.Job {
	job := &domain.Job{
		ID:          r.ID,
		Description: r.Description,
		Price:       r.Price,
		NumClasses:  r.NumClasses,
		ClientID:    r.ClientID,
		WorkerID:    r.WorkerID,
		Subject:     domain.Subject(r.Subject),
		Language:    domain.Language(r.Language),
		Status:      domain.JobStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.ClientReview.Valid {
		review := r.ClientReview.Float64
		job.ClientReview = &review
	}
	return job
}

func jobColumns() []string {
	tbl := domain.GetJobTable()
	return []string{
		tbl.ID, tbl.Description, tbl.Price, tbl.NumClasses, tbl.ClientID, tbl.WorkerID,
		tbl.Subject, tbl.Language, tbl.Status, tbl.ClientReview, tbl.CreatedAt, tbl.UpdatedAt,
	}
}

// jobValues are typed casts so the same list works in VALUES and in INSERT ... SELECT
func jobValues(job *domain.Job) []querybuilder.Expr {
	return []querybuilder.Expr{
		querybuilder.NewExpr("?::text", job.ID),
		querybuilder.NewExpr("?::text", job.Description),
		querybuilder.NewExpr("?::double precision", job.Price),
		querybuilder.NewExpr("?::integer", job.NumClasses),
		querybuilder.NewExpr("?::text", job.ClientID),
		querybuilder.NewExpr("?::text", job.WorkerID),
		querybuilder.NewExpr("?::text", string(job.Subject)),
		querybuilder.NewExpr("?::text", string(job.Language)),
		querybuilder.NewExpr("?::text", string(job.Status)),
		querybuilder.NewExpr("?::double precision", job.ClientReview),
		querybuilder.NewExpr("?::timestamptz", job.CreatedAt),
		querybuilder.NewExpr("?::timestamptz", job.UpdatedAt),
	}
}

func stamp(job *domain.Job) *domain.Job {
	stored := job.Clone()
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	return stored
}

// Get retrieves a job from PostgreSQL by ID
func (r *JobRepository) Get(ctx context.Context, id string) (*domain.Job, error) {
	tbl := domain.GetJobTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(jobColumns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	var row jobRow
	err := r.db.GetContext(ctx, &row, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get job", "jobId", id, "error", err)
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return row.toDomain(), nil
}

// Insert saves a new job
func (r *JobRepository) Insert(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	tbl := domain.GetJobTable()
	stored := stamp(job)

	values := make([]interface{}, 0)
	for _, e := range jobValues(stored) {
		values = append(values, e.Args...)
	}
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(jobColumns()...).
		Into(tbl.TableName()).
		Values(values...).
		Returning(jobColumns()...).
		Build()

	var row jobRow
	if err := r.db.GetContext(ctx, &row, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to save job", "jobId", job.ID, "error", err)
		return nil, sqlutil.TranslateError(err)
	}
	return row.toDomain(), nil
}

// InsertGuarded inserts from a select on the worker row, so the row either
// matches the guard and the job exists, or nothing is written.
func (r *JobRepository) InsertGuarded(ctx context.Context, job *domain.Job, guard domain.UserQuery) (*domain.Job, error) {
	query, args := buildGuardedInsert(r.schema, stamp(job), guard)

	var row jobRow
	err := r.db.GetContext(ctx, &row, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to save job", "jobId", job.ID, "error", err)
		return nil, sqlutil.TranslateError(err)
	}
	return row.toDomain(), nil
}

func buildGuardedInsert(schema string, job *domain.Job, guard domain.UserQuery) (string, []interface{}) {
	guard.ID = &job.WorkerID

	source := querybuilder.NewQueryBuilder(schema).
		SelectExpr(jobValues(job)...).
		From(domain.GetUserTable().GetTableName())
	sqlutil.ApplyUserQuery(source, guard, "")
	source.Lock("SHARE")

	return querybuilder.NewQueryBuilder(schema).
		Insert(jobColumns()...).
		Into(domain.GetJobTable().TableName()).
		ValuesFrom(source).
		Returning(jobColumns()...).
		Build()
}

// ConditionalUpdate applies patch in a single UPDATE whose WHERE is the whole query
func (r *JobRepository) ConditionalUpdate(ctx context.Context, query domain.JobQuery, patch domain.JobPatch) (*domain.Job, error) {
	q, args := buildConditionalUpdate(r.schema, query, patch, time.Now().UTC())

	var row jobRow
	err := r.db.GetContext(ctx, &row, sqlx.Rebind(sqlx.DOLLAR, q), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to update job", "error", err)
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return row.toDomain(), nil
}

func buildConditionalUpdate(schema string, query domain.JobQuery, patch domain.JobPatch, now time.Time) (string, []interface{}) {
	tbl := domain.GetJobTable()

	data := querybuilder.UpdateData{tbl.UpdatedAt: now}
	if patch.Status != nil {
		data[tbl.Status] = string(*patch.Status)
	}
	if patch.ClientReview != nil {
		data[tbl.ClientReview] = *patch.ClientReview
	}

	qb := querybuilder.NewQueryBuilder(schema).Update(tbl.TableName(), data)
	if query.ID != nil {
		qb.Where(fmt.Sprintf("%s = ?", tbl.ID), *query.ID)
	}
	if query.WorkerID != nil {
		qb.Where(fmt.Sprintf("%s = ?", tbl.WorkerID), *query.WorkerID)
	}
	if query.Status != nil {
		qb.Where(fmt.Sprintf("%s = ?", tbl.Status), string(*query.Status))
	}
	return qb.Returning(jobColumns()...).Build()
}
