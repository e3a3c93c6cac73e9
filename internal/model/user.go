package model

import "time"

// Role names a user's access tier.  The dashboard statistics count
// premium users separately; admin is reserved for the seeded
// bootstrap account.
type Role string

const (
	RoleUser    Role = "user"
	RolePremium Role = "premium"
	RoleAdmin   Role = "admin"
)

// User is a record of the `users` collection.  The same struct is used
// for the on-disk representation and for API responses; the password
// digest is stripped via Sanitized before a user ever leaves the API.
//
// Fields:
//  ID        – numeric identifier, unique within the collection.
//  Username  – unique login name (case-sensitive).
//  Email     – unique address, stored lowercased.
//  Password  – SHA-256 hex digest of the password; never plaintext
//              after the startup migration has run.
//  FullName  – optional display name.
//  Phone     – optional contact phone.
//  CreatedAt – registration timestamp.
//  UpdatedAt – last profile update, nil until the first update.
//  IsActive  – whether the account is enabled.
//  Role      – access tier (user, premium, admin).
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Password  string     `json:"password,omitempty"`
	FullName  string     `json:"full_name"`
	Phone     string     `json:"phone"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	IsActive  bool       `json:"is_active"`
	Role      Role       `json:"role"`
}

// Sanitized returns a copy safe for API responses: the password digest
// is cleared and, being omitempty, disappears from the JSON encoding.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
