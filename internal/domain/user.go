package domain

import "github.com/google/uuid"

// User is a stored platform account. Full user documents never leave the
// repository layer; read models embed PublicUser projections instead.
type User struct {
	Meta
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Image        string    `json:"image"`
	Role         string    `json:"role"`
	CompanyID    uuid.UUID `json:"company_id"`
	PasswordHash string    `json:"password_hash,omitempty"`
}

// PublicUser is the restricted projection embedded by hydration. It carries
// only presentation fields so credentials and tenancy internals cannot leak
// through a joined response.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Image string    `json:"image"`
	Role  string    `json:"role"`
}

// Public returns the restricted projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Image: u.Image,
		Role:  u.Role,
	}
}
