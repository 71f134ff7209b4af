// Package dml turns selected or edited result-grid rows into DELETE and
// UPDATE statements, and parses previously generated DELETEs back into
// structured form so new row predicates can be merged without duplication.
//
// Everything here is pure text transformation: no I/O, no shared state, no
// database. Generated statements are handed back to the editor for the user
// to review; nothing is executed.
package dml

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/avelaine/sqlscribe/internal/quoting"
)

// PredicateValue renders v as the operator-and-operand tail of a WHERE
// predicate; the caller prefixes the column name and a space. NULL
// comparison needs IS NULL rather than = NULL, which is why this differs
// from AssignedValue. Total over every value type the result grid produces.
func PredicateValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "IS NULL"
	case string:
		return "= " + quoting.QuoteLiteral(val)
	case bool:
		if val {
			return "= true"
		}
		return "= false"
	default:
		return "= " + fmt.Sprint(v)
	}
}

// AssignedValue renders v as a SET-clause literal. Maps, slices, and structs
// are JSON-encoded and quoted as strings, matching how the result grid hands
// back edited json/jsonb cells.
func AssignedValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quoting.QuoteLiteral(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		if isComposite(v) {
			if b, err := json.Marshal(v); err == nil {
				return quoting.QuoteLiteral(string(b))
			}
		}
		return fmt.Sprint(v)
	}
}

// isComposite reports whether v is an object or array value rather than a
// scalar.
func isComposite(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	default:
		return false
	}
}
