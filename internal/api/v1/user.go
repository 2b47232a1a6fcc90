package v1

import "fmt"

// User roles. Vendedores run the register; only admins may trigger the
// full sales analysis.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User is a store operator account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// Validate checks a user record before it is stored.
func (u *User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	if u.Role != RoleAdmin && u.Role != RoleVendedor {
		return fmt.Errorf("unknown role %q", u.Role)
	}
	return nil
}
