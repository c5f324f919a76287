package seed

// Data defines bootstrap data for the tracker
type Data struct {
	// Users to register
	Users []User `json:"users,omitempty" yaml:"users,omitempty"`

	// Projects to create, each owned by one of the users
	Projects []Project `json:"projects,omitempty" yaml:"projects,omitempty"`
}

// User defines a user account
type User struct {
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
}

// Project defines a project and its members
type Project struct {
	Title string `json:"title" yaml:"title"`
	// Owner is the email of a user from Users
	Owner string `json:"owner" yaml:"owner"`
	// Clients are emails of users from Users
	Clients []string   `json:"clients,omitempty" yaml:"clients,omitempty"`
	Tasks   []Task `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

// Task defines a task
type Task struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
}

// Result counts what an Apply call changed
type Result struct {
	UsersCreated    int
	ProjectsCreated int
	ClientsAdded    int
	TasksCreated    int
	Failed          int
}
