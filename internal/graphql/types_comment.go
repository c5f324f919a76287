package graphql

import (
	"time"

	"github.com/devplatform/tracker/internal/models"
	"github.com/graphql-go/graphql"
)

// defineCommentType defines the Comment GraphQL type
func (s *Schema) defineCommentType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"_id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"body":      &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})
}

// defineLoggedTimeType defines the LoggedTime GraphQL type
func (s *Schema) defineLoggedTimeType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "LoggedTime",
		Fields: graphql.Fields{
			"_id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"description": &graphql.Field{Type: graphql.String},
			"hours":       &graphql.Field{Type: HoursScalar},
			"date":        &graphql.Field{Type: graphql.DateTime},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
		},
	})
}

func (s *Schema) addCommentRelations(commentType, userType, taskType *graphql.Object) {
	commentType.AddFieldConfig("user", &graphql.Field{
		Type:        userType,
		Description: "Author of the comment",
		Resolve: s.safe(func(p graphql.ResolveParams) (interface{}, error) {
			comment, ok := p.Source.(*models.Comment)
			if !ok {
				return nil, nil
			}
			return s.store.GetUser(p.Context, comment.UserID)
		}),
	})
	commentType.AddFieldConfig("task", &graphql.Field{
		Type: taskType,
		Resolve: s.safe(func(p graphql.ResolveParams) (interface{}, error) {
			comment, ok := p.Source.(*models.Comment)
			if !ok {
				return nil, nil
			}
			return s.store.GetTask(p.Context, comment.TaskID)
		}),
	})
}

func (s *Schema) addLoggedTimeRelations(loggedTimeType, userType, taskType *graphql.Object) {
	loggedTimeType.AddFieldConfig("user", &graphql.Field{
		Type:        userType,
		Description: "User who logged the time",
		Resolve: s.safe(func(p graphql.ResolveParams) (interface{}, error) {
			entry, ok := p.Source.(*models.LoggedTime)
			if !ok {
				return nil, nil
			}
			return s.store.GetUser(p.Context, entry.UserID)
		}),
	})
	loggedTimeType.AddFieldConfig("task", &graphql.Field{
		Type: taskType,
		Resolve: s.safe(func(p graphql.ResolveParams) (interface{}, error) {
			entry, ok := p.Source.(*models.LoggedTime)
			if !ok {
				return nil, nil
			}
			return s.store.GetTask(p.Context, entry.TaskID)
		}),
	})
}

// defineLoggedTimeInput defines the LoggedTimeInput GraphQL input type
func (s *Schema) defineLoggedTimeInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoggedTimeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"taskId":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"hours":       &graphql.InputObjectFieldConfig{Type: HoursScalar},
			"date":        &graphql.InputObjectFieldConfig{Type: graphql.DateTime, Description: "RFC 3339 timestamp, defaults to now"},
		},
	})
}

// ============================================================================
// COMMENT MUTATION RESOLVERS
// ============================================================================

func (s *Schema) resolveAddComment(p graphql.ResolveParams) (interface{}, error) {
	taskID := p.Args["taskId"].(string)
	body := p.Args["body"].(string)

	_, userID, err := s.requireTaskMember(p.Context, taskID)
	if err != nil {
		return nil, err
	}
	return s.store.CreateComment(p.Context, taskID, userID, body)
}

func (s *Schema) resolveDeleteComment(p graphql.ResolveParams) (interface{}, error) {
	userID, err := s.requireUser(p.Context)
	if err != nil {
		return nil, err
	}

	commentID := p.Args["commentId"].(string)
	comment, err := s.store.GetComment(p.Context, commentID)
	if err != nil {
		return nil, err
	}
	if err := requireAuthor(userID, comment.UserID); err != nil {
		return nil, err
	}

	return s.store.DeleteComment(p.Context, commentID)
}

// ============================================================================
// LOGGED TIME MUTATION RESOLVERS
// ============================================================================

func (s *Schema) resolveAddLoggedTime(p graphql.ResolveParams) (interface{}, error) {
	inputMap := p.Args["loggedTimeInputs"].(map[string]interface{})
	taskID := stringField(inputMap, "taskId")

	_, userID, err := s.requireTaskOwner(p.Context, taskID)
	if err != nil {
		return nil, err
	}

	input := &models.LoggedTimeInput{
		TaskID:      taskID,
		Description: stringField(inputMap, "description"),
		Hours:       parseHours(inputMap["hours"]),
	}
	if date, ok := inputMap["date"].(time.Time); ok {
		input.Date = &date
	}

	return s.store.CreateLoggedTime(p.Context, userID, input)
}

func (s *Schema) resolveDeleteLoggedTime(p graphql.ResolveParams) (interface{}, error) {
	userID, err := s.requireUser(p.Context)
	if err != nil {
		return nil, err
	}

	entryID := p.Args["loggedTimeId"].(string)
	entry, err := s.store.GetLoggedTime(p.Context, entryID)
	if err != nil {
		return nil, err
	}
	if err := requireAuthor(userID, entry.UserID); err != nil {
		return nil, err
	}

	return s.store.DeleteLoggedTime(p.Context, entryID)
}
