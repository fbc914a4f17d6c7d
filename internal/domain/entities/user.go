package entities

// User is an operator of the system. Credentials live in the external
// identity provider.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	RoleID string `json:"role_id"`
}

func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name}
}
