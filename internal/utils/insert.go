package querybuilder

type InsertRows [][]interface{} // multiple Rows

// Expr is a raw SQL fragment with its own placeholders
type Expr struct {
	SQL  string
	Args []interface{}
}

func NewExpr(sql string, args ...interface{}) Expr {
	return Expr{SQL: sql, Args: args}
}
