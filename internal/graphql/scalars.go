package graphql

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// dateLayouts are the accepted wire formats for the Date scalar, tried in
// order. Values always serialize back as RFC 3339 in UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

func parseDate(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		if t, ok := value.(time.Time); ok {
			return t.UTC()
		}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return nil
}

// dateType is a timestamp-precision scalar carried as an RFC 3339 string.
var dateType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Date",
	Description: "An instant in time, serialized as an RFC 3339 string in UTC.",
	Serialize: func(value interface{}) interface{} {
		switch t := value.(type) {
		case time.Time:
			return t.UTC().Format(time.RFC3339)
		case *time.Time:
			if t == nil {
				return nil
			}
			return t.UTC().Format(time.RFC3339)
		default:
			return nil
		}
	},
	ParseValue: parseDate,
	ParseLiteral: func(valueAST ast.Value) interface{} {
		if sv, ok := valueAST.(*ast.StringValue); ok {
			return parseDate(sv.Value)
		}
		return nil
	},
})
