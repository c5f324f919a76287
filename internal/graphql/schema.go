package graphql

import (
	"github.com/devplatform/tracker/internal/auth"
	"github.com/devplatform/tracker/internal/config"
	"github.com/devplatform/tracker/internal/prometheus"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
)

// Schema represents the GraphQL schema
type Schema struct {
	schema graphql.Schema
	store  prometheus.StoreInterface
	tokens *auth.TokenIssuer
	config *config.Config
	logger *logrus.Logger
}

// NewSchema creates a new GraphQL schema
func NewSchema(store prometheus.StoreInterface, tokens *auth.TokenIssuer, cfg *config.Config, logger *logrus.Logger) *Schema {
	s := &Schema{
		store:  store,
		tokens: tokens,
		config: cfg,
		logger: logger,
	}

	// Define types
	userType := s.defineUserType()
	projectType := s.defineProjectType()
	taskType := s.defineTaskType()
	commentType := s.defineCommentType()
	loggedTimeType := s.defineLoggedTimeType()
	authPayloadType := s.defineAuthPayloadType(userType)
	statsType := s.defineStatsType()
	healthType := s.defineHealthType()

	// Relations reference each other, so they are added once every type exists
	s.addUserRelations(userType, projectType)
	s.addProjectRelations(projectType, userType, taskType)
	s.addTaskRelations(taskType, projectType, commentType, loggedTimeType)
	s.addCommentRelations(commentType, userType, taskType)
	s.addLoggedTimeRelations(loggedTimeType, userType, taskType)

	// Define input types
	newUserInputType := s.defineNewUserInput()
	updateUserInputType := s.defineUpdateUserInput()
	projectInputType := s.defineProjectInput()
	clientInputType := s.defineClientInput()
	addTaskInputType := s.defineAddTaskInput()
	updateTaskInputType := s.defineUpdateTaskInput()
	loggedTimeInputType := s.defineLoggedTimeInput()

	// Define root query
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    userType,
				Resolve: s.safe(s.resolveMe),
			},
			"myProjects": &graphql.Field{
				Type:    graphql.NewList(projectType),
				Resolve: s.safe(s.resolveMyProjects),
			},
			"project": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"_id": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: s.safe(s.resolveProject),
			},
			"task": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"_id": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: s.safe(s.resolveTask),
			},
			"health": &graphql.Field{
				Type:    healthType,
				Resolve: s.safe(s.resolveHealth),
			},
			"stats": &graphql.Field{
				Type:    statsType,
				Resolve: s.safe(s.resolveStats),
			},
		},
	})

	// Define root mutation
	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addUser": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"newUser": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(newUserInputType),
					},
				},
				Resolve: s.safe(s.resolveAddUser),
			},
			"login": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
					"password": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: s.safe(s.resolveLogin),
			},
			"updateUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userInputs": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(updateUserInputType),
					},
				},
				Resolve: s.safe(s.resolveUpdateUser),
			},
			"deleteUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"password": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: s.safe(s.resolveDeleteUser),
			},
			"addProject": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"projectInputs": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(projectInputType),
					},
				},
				Resolve: s.safe(s.resolveAddProject),
			},
			"updateProjectTitle": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
					"title": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: s.safe(s.resolveUpdateProjectTitle),
			},
			"addClientToProject": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
					"clientInputs": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(clientInputType),
					},
				},
				Resolve: s.safe(s.resolveAddClientToProject),
			},
			"deleteProject": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
					"password": &graphql.ArgumentConfig{
						Type:        graphql.String,
						Description: "Current user's password. Required when the server enforces password confirmation.",
					},
				},
				Resolve: s.safe(s.resolveDeleteProject),
			},
			"addTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"taskInputs": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(addTaskInputType),
					},
				},
				Resolve: s.safe(s.resolveAddTask),
			},
			"updateTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"taskInputs": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(updateTaskInputType),
					},
				},
				Resolve: s.safe(s.resolveUpdateTask),
			},
			"deleteTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"taskId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: s.safe(s.resolveDeleteTask),
			},
			"addComment": &graphql.Field{
				Type: commentType,
				Args: graphql.FieldConfigArgument{
					"taskId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
					"body": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: s.safe(s.resolveAddComment),
			},
			"deleteComment": &graphql.Field{
				Type: commentType,
				Args: graphql.FieldConfigArgument{
					"commentId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: s.safe(s.resolveDeleteComment),
			},
			"addLoggedTime": &graphql.Field{
				Type: loggedTimeType,
				Args: graphql.FieldConfigArgument{
					"loggedTimeInputs": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(loggedTimeInputType),
					},
				},
				Resolve: s.safe(s.resolveAddLoggedTime),
			},
			"deleteLoggedTime": &graphql.Field{
				Type: loggedTimeType,
				Args: graphql.FieldConfigArgument{
					"loggedTimeId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: s.safe(s.resolveDeleteLoggedTime),
			},
		},
	})

	// Create schema
	schemaConfig := graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	}

	schema, err := graphql.NewSchema(schemaConfig)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create schema")
	}

	s.schema = schema
	return s
}

// GetSchema returns the GraphQL schema
func (s *Schema) GetSchema() graphql.Schema {
	return s.schema
}

// NOTE: resolvers live next to the type they return:
// - User, login and signup → types_user.go
// - Project → types_project.go
// - Task → types_task.go
// - Comment and logged time → types_comment.go
// - Health, stats → types_common.go
