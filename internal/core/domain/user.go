package domain

import "time"

// User is a directory identity record. Users are never hard-deleted;
// block/unblock toggles access instead.
type User struct {
	Username  string    `json:"username" bson:"username"`
	Role      Role      `json:"role" bson:"role"`
	Blocked   bool      `json:"blocked" bson:"blocked"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Credentials is the static secret table. Secrets are role-level shared
// strings, immutable for the process lifetime; per-user secrets are not
// stored (login only ever checks the role-level entry). ArchiveSecret is the
// reserved secret gating the archive view.
type Credentials struct {
	RoleSecrets   map[Role]string
	ArchiveSecret string
}

// SecretFor returns the shared secret configured for the role.
func (c Credentials) SecretFor(role Role) (string, bool) {
	s, ok := c.RoleSecrets[role]
	return s, ok
}
