package querybuilder

import (
	"fmt"
	"sort"
	"strings"
)

type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	SelectExpr(exprs ...Expr) QueryBuilder
	From(table string) QueryBuilder
	Into(table string) QueryBuilder
	// Where adds a condition. Conditions are joined with AND.
	Where(clause string, args ...interface{}) QueryBuilder

	OrderBy(col string, asc bool) QueryBuilder
	Limit(n int) QueryBuilder
	Offset(n int) QueryBuilder
	// Lock appends a row locking clause such as "UPDATE" or "SHARE" to a select
	Lock(mode string) QueryBuilder

	Insert(cols ...string) QueryBuilder

	Values(values ...interface{}) QueryBuilder
	// ValuesFrom feeds an insert from a select instead of literal rows
	ValuesFrom(sub QueryBuilder) QueryBuilder

	Update(table string, data UpdateData) QueryBuilder
	Returning(cols ...string) QueryBuilder
	Build() (string, []interface{})
}

type condition struct {
	clause string
	args   []interface{}
}

// UpdateData maps column to new value. An Expr value is written as raw SQL.
type UpdateData map[string]interface{}

type queryBuilder struct {
	table      string
	cols       []string
	exprs      []Expr
	conditions []condition
	values     InsertRows
	source     QueryBuilder
	updateData UpdateData
	orderBy    []string
	limit      int
	offset     int
	returning  []string
	lock       string
	schema     string
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

// SelectExpr selects parameterised expressions, placed after the plain columns
func (q *queryBuilder) SelectExpr(exprs ...Expr) QueryBuilder {
	q.exprs = append(q.exprs, exprs...)
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = append(q.values, values)
	return q
}

func (q *queryBuilder) ValuesFrom(sub QueryBuilder) QueryBuilder {
	q.source = sub
	return q
}

func (q *queryBuilder) Update(table string, data UpdateData) QueryBuilder {
	q.table = table
	q.updateData = data
	return q
}

func (q *queryBuilder) Returning(cols ...string) QueryBuilder {
	q.returning = append(q.returning, cols...)
	return q
}

func (q *queryBuilder) Limit(n int) QueryBuilder {
	q.limit = n
	return q
}

func (q *queryBuilder) Offset(n int) QueryBuilder {
	q.offset = n
	return q
}

func (q *queryBuilder) Lock(mode string) QueryBuilder {
	q.lock = mode
	return q
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	orderVector := "ASC"
	if !asc {
		orderVector = "DESC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, orderVector))
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, condition{clause: clause, args: args})
	return q
}

func buildCondition(conditions []condition) (string, []interface{}) {
	parts := make([]string, 0, len(conditions))
	args := make([]interface{}, 0)
	for _, cond := range conditions {
		parts = append(parts, cond.clause)
		args = append(args, cond.args...)
	}
	return strings.Join(parts, " AND "), args
}

func (q *queryBuilder) Build() (string, []interface{}) {
	if len(q.values) > 0 || q.source != nil {
		return q.buildInsert()
	}
	if len(q.updateData) > 0 {
		return q.buildUpdate()
	}
	return q.buildSelect()
}

func (q *queryBuilder) tableName() string {
	if q.schema == "" {
		return q.table
	}
	return fmt.Sprintf("%s.%s", q.schema, q.table)
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	var args []interface{}

	selected := append([]string(nil), q.cols...)
	for _, e := range q.exprs {
		selected = append(selected, e.SQL)
		args = append(args, e.Args...)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selected, ", "), q.tableName())

	if len(q.conditions) > 0 {
		where, condArgs := buildCondition(q.conditions)
		if where != "" {
			query += fmt.Sprintf(" WHERE %s", where)
			args = append(args, condArgs...)
		}
	}

	if len(q.orderBy) > 0 {
		query += fmt.Sprintf(" ORDER BY %s", strings.Join(q.orderBy, ", "))
	}

	if q.limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.limit)
	}

	if q.offset > 0 {
		query += " OFFSET ?"
		args = append(args, q.offset)
	}

	if q.lock != "" {
		query += " FOR " + q.lock
	}

	return query, args
}

func (q *queryBuilder) buildInsert() (string, []interface{}) {
	query := fmt.Sprintf("INSERT INTO %s (%s) ", q.tableName(), strings.Join(q.cols, ", "))
	args := make([]interface{}, 0)

	if q.source != nil {
		subQuery, subArgs := q.source.Build()
		query += subQuery
		args = append(args, subArgs...)
	} else {
		if len(q.cols) == 0 {
			return "", nil
		}
		valueTuples := make([]string, len(q.values))
		for i, row := range q.values {
			if len(row) != len(q.cols) {
				return "", nil
			}
			placeholders := make([]string, len(row))
			for j, val := range row {
				placeholders[j] = "?"
				args = append(args, val)
			}
			valueTuples[i] = fmt.Sprintf("(%s)", strings.Join(placeholders, ", "))
		}
		query += "VALUES " + strings.Join(valueTuples, ", ")
	}

	query += q.buildReturning()
	return query, args
}

func (q *queryBuilder) buildUpdate() (string, []interface{}) {
	cols := make([]string, 0, len(q.updateData))
	for col := range q.updateData {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	setClause := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		if e, ok := q.updateData[col].(Expr); ok {
			setClause = append(setClause, fmt.Sprintf("%s = %s", col, e.SQL))
			args = append(args, e.Args...)
			continue
		}
		setClause = append(setClause, fmt.Sprintf("%s = ?", col))
		args = append(args, q.updateData[col])
	}
	query := fmt.Sprintf("UPDATE %s SET %s", q.tableName(), strings.Join(setClause, ", "))

	if len(q.conditions) > 0 {
		where, condArgs := buildCondition(q.conditions)
		if where != "" {
			query += fmt.Sprintf(" WHERE %s", where)
			args = append(args, condArgs...)
		}
	}

	query += q.buildReturning()
	return query, args
}

func (q *queryBuilder) buildReturning() string {
	if len(q.returning) == 0 {
		return ""
	}
	return " RETURNING " + strings.Join(q.returning, ", ")
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}
