package entities

type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	CNPJ    string `json:"cnpj"`
	Address string `json:"address"`
	// ServiceIDs are the services the client has under contract. New
	// orders contract them when the caller names none.
	ServiceIDs []string `json:"serviceIds"`
}

func (c Client) Clone() Client {
	if c.ServiceIDs != nil {
		c.ServiceIDs = append([]string{}, c.ServiceIDs...)
	}
	return c
}

func (c Client) Snapshot() ClientSnapshot {
	return ClientSnapshot{Name: c.Name, Email: c.Email}
}
