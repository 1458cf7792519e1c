package entities

// Role is the authorization role supplied by the auth collaborator.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
	RoleSystem   Role = "system"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID    string `json:"user_id"`
	Role      Role   `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsTrusted reports whether the actor may act on any record (admins and internal callers).
func (a Actor) IsTrusted() bool { return a.Role == RoleAdmin || a.Role == RoleSystem }

// SystemActor is used by webhooks and the clearing sweep.
func SystemActor(name string) Actor {
	return Actor{UserID: name, Role: RoleSystem}
}
