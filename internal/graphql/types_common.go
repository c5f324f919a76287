package graphql

import (
	"time"

	"github.com/devplatform/tracker/internal/models"
	"github.com/graphql-go/graphql"
)

// defineStatsType defines the Stats GraphQL type
func (s *Schema) defineStatsType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Stats",
		Fields: graphql.Fields{
			"users":           &graphql.Field{Type: graphql.Int},
			"projects":        &graphql.Field{Type: graphql.Int},
			"tasks":           &graphql.Field{Type: graphql.Int},
			"comments":        &graphql.Field{Type: graphql.Int},
			"loggedTimes":     &graphql.Field{Type: graphql.Int},
			"openConnections": &graphql.Field{Type: graphql.Int},
			"inUse":           &graphql.Field{Type: graphql.Int},
		},
	})
}

// defineHealthType defines the Health GraphQL type
func (s *Schema) defineHealthType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Health",
		Fields: graphql.Fields{
			"status":    &graphql.Field{Type: graphql.String},
			"timestamp": &graphql.Field{Type: graphql.Int},
			"database":  &graphql.Field{Type: graphql.Boolean},
		},
	})
}

// stringField reads an optional string from a GraphQL input map
func stringField(input map[string]interface{}, key string) string {
	if v, ok := input[key].(string); ok {
		return v
	}
	return ""
}

// ============================================================================
// COMMON RESOLVERS (Health, Stats)
// ============================================================================

func (s *Schema) resolveHealth(p graphql.ResolveParams) (interface{}, error) {
	dbHealthy := s.store.HealthCheck(p.Context) == nil
	status := "healthy"
	if !dbHealthy {
		status = "unhealthy"
	}

	return &models.HealthStatus{
		Status:    status,
		Timestamp: time.Now().Unix(),
		Database:  dbHealthy,
	}, nil
}

func (s *Schema) resolveStats(p graphql.ResolveParams) (interface{}, error) {
	if _, err := s.requireUser(p.Context); err != nil {
		return nil, err
	}
	return s.store.GetStats(p.Context)
}
