package graphql

import (
	"github.com/devplatform/tracker/internal/auth"
	"github.com/devplatform/tracker/internal/models"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
)

// defineUserType defines the User GraphQL type. The password hash is never exposed.
func (s *Schema) defineUserType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.String},
			"email":     &graphql.Field{Type: graphql.String},
			"role":      &graphql.Field{Type: RoleEnum},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})
}

// addUserRelations adds the populated project list to User
func (s *Schema) addUserRelations(userType, projectType *graphql.Object) {
	userType.AddFieldConfig("projects", &graphql.Field{
		Type:        graphql.NewList(projectType),
		Description: "Projects the user owns or is a client on. Only visible on the requester's own record.",
		Resolve:     s.safe(s.resolveUserProjects),
	})
}

// defineAuthPayloadType defines the Auth GraphQL type returned by signup and login
func (s *Schema) defineAuthPayloadType(userType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Auth",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: userType},
		},
	})
}

// defineNewUserInput defines the NewUserInput GraphQL input type
func (s *Schema) defineNewUserInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "NewUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
}

// defineUpdateUserInput defines the UpdateUserInput GraphQL input type
func (s *Schema) defineUpdateUserInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
}

// ============================================================================
// USER QUERY RESOLVERS
// ============================================================================

func (s *Schema) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	userID, err := s.requireUser(p.Context)
	if err != nil {
		return nil, err
	}
	return s.store.GetUser(p.Context, userID)
}

func (s *Schema) resolveMyProjects(p graphql.ResolveParams) (interface{}, error) {
	userID, err := s.requireUser(p.Context)
	if err != nil {
		return nil, err
	}
	return s.store.ListUserProjects(p.Context, userID)
}

func (s *Schema) resolveUserProjects(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*models.User)
	if !ok {
		return nil, nil
	}
	if auth.GetUserFromContext(p.Context) != user.ID {
		return []*models.Project{}, nil
	}
	return s.store.ListUserProjects(p.Context, user.ID)
}

// ============================================================================
// USER MUTATION RESOLVERS
// ============================================================================

func (s *Schema) resolveAddUser(p graphql.ResolveParams) (interface{}, error) {
	inputMap := p.Args["newUser"].(map[string]interface{})

	input := &models.CreateUserInput{
		Name:     stringField(inputMap, "name"),
		Email:    stringField(inputMap, "email"),
		Password: stringField(inputMap, "password"),
	}

	user, err := s.store.CreateUser(p.Context, input)
	if err != nil {
		return nil, err
	}
	return s.authPayload(user)
}

func (s *Schema) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	email := p.Args["email"].(string)
	password := p.Args["password"].(string)

	user, err := s.store.Authenticate(p.Context, email, password)
	if err != nil {
		s.logger.WithField("email", email).Warn("Login failed")
		return nil, err
	}
	return s.authPayload(user)
}

func (s *Schema) resolveUpdateUser(p graphql.ResolveParams) (interface{}, error) {
	userID, err := s.requireUser(p.Context)
	if err != nil {
		return nil, err
	}

	inputMap := p.Args["userInputs"].(map[string]interface{})

	input := &models.UpdateUserInput{}
	if name, ok := inputMap["name"].(string); ok {
		input.Name = &name
	}
	if email, ok := inputMap["email"].(string); ok {
		input.Email = &email
	}
	if password, ok := inputMap["password"].(string); ok {
		input.Password = &password
	}

	return s.store.UpdateUser(p.Context, userID, input)
}

func (s *Schema) resolveDeleteUser(p graphql.ResolveParams) (interface{}, error) {
	userID, err := s.requireUser(p.Context)
	if err != nil {
		return nil, err
	}

	password := p.Args["password"].(string)
	return s.store.DeleteUser(p.Context, userID, password)
}

// authPayload signs a session token for user
func (s *Schema) authPayload(user *models.User) (*models.AuthPayload, error) {
	token, err := s.tokens.Sign(user)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user":  user.ID,
		"email": user.Email,
	}).Info("Session token issued")

	return &models.AuthPayload{Token: token, User: user}, nil
}
