package graphql

import (
	"math"
	"strconv"
	"strings"

	"github.com/devplatform/tracker/internal/models"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// HoursScalar accepts hours as a number or a numeric string.
// Anything that does not parse to a finite, non-negative number becomes 0.
var HoursScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Hours",
	Description: "Time spent in hours. Numbers and numeric strings are accepted; invalid values are stored as 0.",
	Serialize: func(value interface{}) interface{} {
		return parseHours(value)
	},
	ParseValue: func(value interface{}) interface{} {
		return parseHours(value)
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		switch v := valueAST.(type) {
		case *ast.IntValue:
			return parseHours(v.Value)
		case *ast.FloatValue:
			return parseHours(v.Value)
		case *ast.StringValue:
			return parseHours(v.Value)
		}
		return float64(0)
	},
})

func parseHours(value interface{}) float64 {
	var hours float64
	switch v := value.(type) {
	case float64:
		hours = v
	case float32:
		hours = float64(v)
	case int:
		hours = float64(v)
	case int64:
		hours = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		hours = parsed
	case *string:
		if v == nil {
			return 0
		}
		return parseHours(*v)
	default:
		return 0
	}

	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return 0
	}
	return hours
}

// TaskStatusEnum is the workflow state of a task
var TaskStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "TaskStatus",
	Values: graphql.EnumValueConfigMap{
		"REQUESTED": &graphql.EnumValueConfig{
			Value:       models.TaskRequested,
			Description: "Asked for by a client, not yet accepted",
		},
		"TODO": &graphql.EnumValueConfig{
			Value: models.TaskTodo,
		},
		"IN_PROGRESS": &graphql.EnumValueConfig{
			Value: models.TaskInProgress,
		},
		"DONE": &graphql.EnumValueConfig{
			Value: models.TaskDone,
		},
	},
})

// RoleEnum classifies users and memberships
var RoleEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Role",
	Values: graphql.EnumValueConfigMap{
		"OWNER":  &graphql.EnumValueConfig{Value: models.RoleOwner},
		"CLIENT": &graphql.EnumValueConfig{Value: models.RoleClient},
	},
})
