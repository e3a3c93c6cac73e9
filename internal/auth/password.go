// Package auth provides credential hashing and bearer-token helpers.
//
// Passwords are stored as a single unsalted SHA-256 hex digest.  That
// is deliberately compatible with the legacy user files this service
// inherits: verification falls back to a plaintext comparison for
// records that predate hashing, and MigratePasswords rewrites those
// records once at startup.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"go.uber.org/zap"

	"github.com/projectd/dealership-api/internal/model"
	"github.com/projectd/dealership-api/internal/store"
)

// digestHexLen is the length of a SHA-256 hex digest.
const digestHexLen = 64

// HashPassword returns the SHA-256 hex digest of plain.
func HashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// IsHashed reports whether stored already looks like a SHA-256 hex
// digest (64 lowercase hex characters).
func IsHashed(stored string) bool {
	if len(stored) != digestHexLen {
		return false
	}
	for _, r := range stored {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// VerifyPassword compares plain against a stored credential.  A
// digest-shaped stored value is compared hash-to-hash; anything else
// is treated as a legacy plaintext password.
func VerifyPassword(plain, stored string) bool {
	if IsHashed(stored) {
		digest := HashPassword(plain)
		return subtle.ConstantTimeCompare([]byte(digest), []byte(stored)) == 1
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(stored)) == 1
}

// MigratePasswords rehashes every stored password that is not already
// a SHA-256 hex digest and rewrites the users collection once.  Values
// longer than one digest are assumed to be an accidental double hash
// and are truncated to the first 64 characters before rehashing, which
// mirrors what the previous implementation of this service did.
func MigratePasswords(s *store.Store, log *zap.Logger) error {
	return s.Update(store.Users, func() error {
		var users []model.User
		s.Read(store.Users, &users)

		changed := false
		for i, u := range users {
			if IsHashed(u.Password) {
				continue
			}
			log.Info("migrating stored password to digest form",
				zap.String("username", u.Username),
				zap.Int("stored_len", len(u.Password)))
			raw := u.Password
			if len(raw) > digestHexLen {
				raw = raw[:digestHexLen]
			}
			users[i].Password = HashPassword(raw)
			changed = true
		}
		if !changed {
			return nil
		}
		return s.Write(store.Users, users)
	})
}
