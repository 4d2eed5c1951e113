// Package domain contains the core data types for the Chronotours booking
// client. It has no dependencies on the store, transport, or storage layers
// and is imported by every other internal package.
package domain

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Token is the opaque credential issued when a session is created.
// It carries no expiry: the Auth collaborator states no lifetime, so none is
// modelled here. String redacts the value so tokens never reach logs.
type Token string

// tokenPrefix marks tokens issued by this client.
const tokenPrefix = "tt_"

// NewToken issues a fresh opaque token with 256 bits of entropy.
func NewToken() (Token, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("domain.NewToken: %w", err)
	}
	return Token(tokenPrefix + base64.RawURLEncoding.EncodeToString(b)), nil
}

// IsZero reports whether the token is empty.
func (t Token) IsZero() bool { return t == "" }

// String implements fmt.Stringer without revealing the token.
func (t Token) String() string {
	if t.IsZero() {
		return ""
	}
	return "[redacted]"
}

// Session is the authenticated user's identity on this device.
// It exists only while signed in and is persisted as one JSON record.
type Session struct {
	UserID              string   `json:"userId"`
	Username            string   `json:"username"`
	Email               string   `json:"email"`
	ProfilePicture      string   `json:"profilePicture,omitempty"`
	Points              int      `json:"points"`
	FavoriteTimePeriods []string `json:"favoriteTimePeriods,omitempty"`
	Achievements        []string `json:"achievements,omitempty"`
	CredentialToken     Token    `json:"credentialToken"`
}

// ProfileUpdate is a partial update to a Session. Nil fields are left as-is.
type ProfileUpdate struct {
	Username            *string   `json:"username,omitempty"`
	Email               *string   `json:"email,omitempty"`
	ProfilePicture      *string   `json:"profilePicture,omitempty"`
	Points              *int      `json:"points,omitempty"`
	FavoriteTimePeriods *[]string `json:"favoriteTimePeriods,omitempty"`
	Achievements        *[]string `json:"achievements,omitempty"`
}

// Apply returns a copy of s with every non-nil field of u merged in.
// The credential token and user id are never touched.
func (u ProfileUpdate) Apply(s Session) Session {
	if u.Username != nil {
		s.Username = *u.Username
	}
	if u.Email != nil {
		s.Email = *u.Email
	}
	if u.ProfilePicture != nil {
		s.ProfilePicture = *u.ProfilePicture
	}
	if u.Points != nil {
		s.Points = *u.Points
	}
	if u.FavoriteTimePeriods != nil {
		s.FavoriteTimePeriods = append([]string(nil), (*u.FavoriteTimePeriods)...)
	}
	if u.Achievements != nil {
		s.Achievements = append([]string(nil), (*u.Achievements)...)
	}
	return s
}
