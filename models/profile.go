package models

// RoleAdmin is the default administrator marker stored in profiles.role.
const RoleAdmin = "admin"

// Profile is the per-user record keyed by the auth user id.
// It maps to the `profiles` table.
type Profile struct {
	ID        string `db:"id" json:"id"`
	Role      string `db:"role" json:"role"`
	FullName  string `db:"full_name" json:"full_name"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// IsAdmin reports whether the profile carries the given administrator marker.
func (p *Profile) IsAdmin(marker string) bool {
	return p != nil && p.Role == marker
}
