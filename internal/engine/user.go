package engine

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the account that owns habits and carries the progression.
// Progression is embedded so xp, level and badges sit at the top level in JSON.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Role   Role   `json:"role"`
	Progression
}

// NewUser returns a user at level 1 with no XP or badges.
func NewUser(id, name, email string) *User {
	return &User{
		ID:          id,
		Name:        name,
		Email:       email,
		Role:        RoleUser,
		Progression: Progression{Level: 1, Badges: []Badge{}},
	}
}
