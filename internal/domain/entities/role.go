package entities

// Role grants actions per resource. The literal action "*" grants every
// action on that resource.
type Role struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Permissions map[string][]string `json:"permissions"`
}
