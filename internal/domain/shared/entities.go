package shared

import (
	"github.com/google/uuid"
)

// Role is the capability an authenticated user acts with
type Role string

const (
	RoleProjectPoster Role = "project_poster"
	RoleContractor    Role = "contractor"
	RoleAdmin         Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleProjectPoster, RoleContractor, RoleAdmin:
		return true
	}
	return false
}

// Actor is an already-authenticated caller. The core trusts it.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasRole reports whether the actor holds one of the given roles
func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// SystemActor is used by the deadline sweep
var SystemActor = Actor{ID: uuid.Nil, Role: RoleAdmin}
