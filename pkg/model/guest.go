package model

// Guest is an existing or newly created guest entity. Selecting a guest
// hydrates the draft's address fields; locally edited address fields are
// written back only at submission time, and only when changed.
type Guest struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
	Email     string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string  `json:"phone,omitempty" validate:"omitempty,e164"`
	Address   Address `json:"address"`
}

// GuestUpdate carries the address write-back issued before reservation
// creation. Nil fields are left untouched by the backend.
type GuestUpdate struct {
	Address *Address `json:"address,omitempty"`
}

func (g *Guest) FullName() string {
	switch {
	case g.FirstName == "":
		return g.LastName
	case g.LastName == "":
		return g.FirstName
	default:
		return g.FirstName + " " + g.LastName
	}
}
