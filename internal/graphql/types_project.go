package graphql

import (
	"github.com/devplatform/tracker/internal/apperr"
	"github.com/devplatform/tracker/internal/models"
	"github.com/graphql-go/graphql"
)

// defineProjectType defines the Project GraphQL type
func (s *Schema) defineProjectType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Project",
		Fields: graphql.Fields{
			"_id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})
}

// addProjectRelations adds owners, clients and tasks to Project
func (s *Schema) addProjectRelations(projectType, userType, taskType *graphql.Object) {
	projectType.AddFieldConfig("owners", &graphql.Field{
		Type:    graphql.NewList(userType),
		Resolve: s.safe(s.resolveProjectMembers(models.RoleOwner)),
	})
	projectType.AddFieldConfig("clients", &graphql.Field{
		Type:    graphql.NewList(userType),
		Resolve: s.safe(s.resolveProjectMembers(models.RoleClient)),
	})
	projectType.AddFieldConfig("tasks", &graphql.Field{
		Type:    graphql.NewList(taskType),
		Resolve: s.safe(s.resolveProjectTasks),
	})
}

// defineProjectInput defines the ProjectInput GraphQL input type
func (s *Schema) defineProjectInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProjectInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
}

// defineClientInput defines the ClientInput GraphQL input type.
// name and password are used only when no user with the email exists yet.
func (s *Schema) defineClientInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ClientInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
}

// ============================================================================
// PROJECT QUERY RESOLVERS
// ============================================================================

func (s *Schema) resolveProject(p graphql.ResolveParams) (interface{}, error) {
	projectID := p.Args["_id"].(string)

	if _, _, err := s.requireMember(p.Context, projectID); err != nil {
		return nil, err
	}
	return s.store.GetProject(p.Context, projectID)
}

func (s *Schema) resolveProjectMembers(role models.Role) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		project, ok := p.Source.(*models.Project)
		if !ok {
			return nil, nil
		}
		return s.store.ListProjectMembers(p.Context, project.ID, role)
	}
}

func (s *Schema) resolveProjectTasks(p graphql.ResolveParams) (interface{}, error) {
	project, ok := p.Source.(*models.Project)
	if !ok {
		return nil, nil
	}
	return s.store.ListProjectTasks(p.Context, project.ID)
}

// ============================================================================
// PROJECT MUTATION RESOLVERS
// ============================================================================

func (s *Schema) resolveAddProject(p graphql.ResolveParams) (interface{}, error) {
	userID, err := s.requireUser(p.Context)
	if err != nil {
		return nil, err
	}

	inputMap := p.Args["projectInputs"].(map[string]interface{})
	input := &models.ProjectInput{
		Title: stringField(inputMap, "title"),
	}

	return s.store.CreateProject(p.Context, userID, input)
}

func (s *Schema) resolveUpdateProjectTitle(p graphql.ResolveParams) (interface{}, error) {
	projectID := p.Args["projectId"].(string)
	title := p.Args["title"].(string)

	if _, _, err := s.requireMember(p.Context, projectID); err != nil {
		return nil, err
	}
	return s.store.UpdateProjectTitle(p.Context, projectID, title)
}

func (s *Schema) resolveAddClientToProject(p graphql.ResolveParams) (interface{}, error) {
	projectID := p.Args["projectId"].(string)

	if _, err := s.requireOwner(p.Context, projectID); err != nil {
		return nil, err
	}

	inputMap := p.Args["clientInputs"].(map[string]interface{})
	input := &models.ClientInput{
		Name:     stringField(inputMap, "name"),
		Email:    stringField(inputMap, "email"),
		Password: stringField(inputMap, "password"),
	}

	return s.store.AddClientToProject(p.Context, projectID, input)
}

func (s *Schema) resolveDeleteProject(p graphql.ResolveParams) (interface{}, error) {
	projectID := p.Args["projectId"].(string)

	userID, err := s.requireOwner(p.Context, projectID)
	if err != nil {
		return nil, err
	}

	password, hasPassword := p.Args["password"].(string)
	switch {
	case hasPassword:
		if err := s.store.VerifyPassword(p.Context, userID, password); err != nil {
			return nil, err
		}
	case s.config.RequirePasswordForDelete:
		return nil, apperr.ErrValidation(map[string]string{"password": "is required"})
	}

	return s.store.DeleteProject(p.Context, projectID)
}
