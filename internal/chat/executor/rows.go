package executor

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Row is one result row keyed by output column name.
type Row map[string]interface{}

func scanRows(rows *sql.Rows, cols []Column) ([]Row, error) {
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	types := make([]FieldType, len(names))
	for i := range names {
		if i < len(cols) {
			types[i] = cols[i].Type
		}
	}

	out := []Row{}
	for rows.Next() {
		raw := make([]interface{}, len(names))
		ptrs := make([]interface{}, len(names))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(Row, len(names))
		for i, name := range names {
			row[name] = normalize(raw[i], types[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return out, nil
}

// normalize turns driver values into JSON-friendly ones. lib/pq returns
// NUMERIC as []byte; the column type decides how to read it.
func normalize(v interface{}, typ FieldType) interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		s := string(x)
		switch typ {
		case TypeInt, TypeFloat:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return s
			}
			if typ == TypeInt && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
				return int64(f)
			}
			return f
		case TypeBool:
			if b, err := strconv.ParseBool(s); err == nil {
				return b
			}
		}
		return s
	case time.Time:
		if typ == TypeDate {
			return x.Format("2006-01-02")
		}
		return x.UTC().Format(time.RFC3339)
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	}
	return v
}

// shape turns scanned rows into the value a terminal returns.
func shape(st *Statement, rows []Row) interface{} {
	switch st.Terminal {
	case TerminalCount:
		if len(rows) == 0 {
			return int64(0)
		}
		return toInt(rows[0]["count"])
	case TerminalExists:
		if len(rows) == 0 {
			return false
		}
		b, _ := rows[0]["exists"].(bool)
		return b
	case TerminalAggregate:
		agg := map[string]interface{}{}
		for _, c := range st.Columns {
			agg[c.Name] = nil
		}
		if len(rows) > 0 {
			for k, v := range rows[0] {
				agg[k] = v
			}
		}
		if st.Pick != "" {
			return agg[st.Pick]
		}
		return agg
	}

	if st.Flat {
		flat := make([]interface{}, 0, len(rows))
		for _, r := range rows {
			flat = append(flat, r[st.Columns[0].Name])
		}
		if st.Single {
			if len(flat) == 0 {
				return nil
			}
			return flat[0]
		}
		return flat
	}
	if st.Single {
		if len(rows) == 0 {
			return nil
		}
		return rows[0]
	}
	if rows == nil {
		return []Row{}
	}
	return rows
}

func toInt(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

// rowCount reports how many records a shaped result holds.
func rowCount(result interface{}) int {
	switch r := result.(type) {
	case nil:
		return 0
	case []Row:
		return len(r)
	case []interface{}:
		return len(r)
	}
	return 1
}
