package store

// ResultSet is the generic outcome of an ad-hoc SQL query
type ResultSet struct {
	Columns []string
	Rows    [][]interface{}
}
