package models

// User is the identity returned by the auth endpoints.
type User struct {
	ID       ID     `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// DisplayName prefers the full name, then the username, then the email.
func (u User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	}
	return u.Email
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// AuthResponse is the login/register reply. The token and user normally sit
// at the top level; some deployments nest them under data.
type AuthResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Token   string     `json:"token,omitempty"`
	User    *User      `json:"user,omitempty"`
	Data    *AuthGrant `json:"data,omitempty"`
}

type AuthGrant struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Grant returns the token and user wherever the server put them.
func (r AuthResponse) Grant() (string, *User) {
	if r.Token != "" && r.User != nil {
		return r.Token, r.User
	}
	if r.Data != nil {
		return r.Data.Token, r.Data.User
	}
	return r.Token, r.User
}
