package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		build     func() QueryBuilder
		wantQuery string
		wantArgs  []interface{}
	}{
		{
			name: "select with where, order and paging",
			build: func() QueryBuilder {
				return NewQueryBuilder("public").
					Select("id", "name").
					From("users").
					Where("is_wizard = ?", true).
					Where("is_disabled = ?", false).
					OrderBy("reviews", false).
					OrderBy("id", true).
					Limit(5).
					Offset(10)
			},
			wantQuery: "SELECT id, name FROM public.users WHERE is_wizard = ? AND is_disabled = ? ORDER BY reviews DESC, id ASC LIMIT ? OFFSET ?",
			wantArgs:  []interface{}{true, false, 5, 10},
		},
		{
			name: "select without conditions",
			build: func() QueryBuilder {
				return NewQueryBuilder("").Select("id").From("users")
			},
			wantQuery: "SELECT id FROM users",
			wantArgs:  nil,
		},
		{
			name: "huge offset is kept",
			build: func() QueryBuilder {
				return NewQueryBuilder("public").Select("id").From("users").Limit(100).Offset(1 << 62)
			},
			wantQuery: "SELECT id FROM public.users LIMIT ? OFFSET ?",
			wantArgs:  []interface{}{100, 1 << 62},
		},
		{
			name: "select expressions come after columns",
			build: func() QueryBuilder {
				return NewQueryBuilder("public").
					Select("id").
					SelectExpr(NewExpr("?::text", "x")).
					From("users").
					Where("id = ?", "u1")
			},
			wantQuery: "SELECT id, ?::text FROM public.users WHERE id = ?",
			wantArgs:  []interface{}{"x", "u1"},
		},
		{
			name: "insert values returning",
			build: func() QueryBuilder {
				return NewQueryBuilder("public").
					Insert("id", "name").
					Into("users").
					Values("u1", "Ann").
					Values("u2", "Bob").
					Returning("id")
			},
			wantQuery: "INSERT INTO public.users (id, name) VALUES (?, ?), (?, ?) RETURNING id",
			wantArgs:  []interface{}{"u1", "Ann", "u2", "Bob"},
		},
		{
			name: "insert from select",
			build: func() QueryBuilder {
				source := NewQueryBuilder("public").
					SelectExpr(NewExpr("?", "j1"), NewExpr("?", "w1")).
					From("users").
					Where("id = ?", "w1").
					Where("? = ANY(subjects)", "Math")
				return NewQueryBuilder("public").
					Insert("id", "worker_id").
					Into("jobs").
					ValuesFrom(source).
					Returning("id", "worker_id")
			},
			wantQuery: "INSERT INTO public.jobs (id, worker_id) SELECT ?, ? FROM public.users WHERE id = ? AND ? = ANY(subjects) RETURNING id, worker_id",
			wantArgs:  []interface{}{"j1", "w1", "w1", "Math"},
		},
		{
			name: "update sorts columns and expands expressions",
			build: func() QueryBuilder {
				return NewQueryBuilder("public").
					Update("users", UpdateData{
						"name":     "Ann",
						"exp_jobs": NewExpr("exp_jobs + ?", 1),
					}).
					Where("id = ?", "u1").
					Returning("id")
			},
			wantQuery: "UPDATE public.users SET exp_jobs = exp_jobs + ?, name = ? WHERE id = ? RETURNING id",
			wantArgs:  []interface{}{1, "Ann", "u1"},
		},
		{
			name: "locking select",
			build: func() QueryBuilder {
				return NewQueryBuilder("public").
					Select("id").
					From("users").
					Where("id = ?", "u1").
					Limit(1).
					Lock("UPDATE")
			},
			wantQuery: "SELECT id FROM public.users WHERE id = ? LIMIT ? FOR UPDATE",
			wantArgs:  []interface{}{"u1", 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := tt.build().Build()
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildInsert_MismatchedRow(t *testing.T) {
	query, args := NewQueryBuilder("public").
		Insert("id", "name").
		Into("users").
		Values("u1").
		Build()

	assert.Empty(t, query)
	assert.Nil(t, args)
}
