package services

import "github.com/mistryapurva/the-food-critique-api/internal/models"

// Actor is the verified identity a request acts as, decoded from the session
// token by the middleware and handed to every service operation that needs it.
type Actor struct {
	ID    uint
	Name  string
	Email string
	Role  models.Role
}

// Ref is the {id, name} projection used when a joined record is embedded in
// a response instead of its full document.
type Ref struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
