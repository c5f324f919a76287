package graphql

import (
	"errors"

	"github.com/devplatform/tracker/internal/apperr"
	"github.com/devplatform/tracker/internal/auth"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
)

// safe wraps a resolver so that only client-safe errors reach the response.
// Typed errors pass through; anything else is logged and replaced with INTERNAL.
func (s *Schema) safe(fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		result, err := fn(p)
		if err == nil {
			return result, nil
		}

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}

		s.logger.WithError(err).WithFields(logrus.Fields{
			"field": p.Info.FieldName,
			"user":  auth.GetUserFromContext(p.Context),
		}).Error("Resolver failed")
		return nil, apperr.ErrInternal()
	}
}
