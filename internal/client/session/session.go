// Package session tracks which owner the client is currently acting as.
// Before any login the app runs against a fixed local owner key, so every
// storage call always has a non-empty owner and local-only data stays
// separated from each account's data.
package session

import "github.com/Anandrajbgp/Noteflow/internal/common"

// Session identifies the active record owner. The zero value is the
// unauthenticated local session.
type Session struct {
	ownerKey string
	token    string
}

// Local returns the unauthenticated session.
func Local() Session {
	return Session{}
}

// ForUser returns a session for an authenticated server-side user.
func ForUser(userID, token string) Session {
	return Session{ownerKey: userID, token: token}
}

// OwnerKey returns the key records are stored under.
func (s Session) OwnerKey() string {
	if s.ownerKey == "" {
		return common.LocalOwnerKey
	}
	return s.ownerKey
}

// Token returns the bearer token, empty for the local session.
func (s Session) Token() string {
	return s.token
}

// Authenticated reports whether the session belongs to a server account.
// Only authenticated sessions are eligible for sync.
func (s Session) Authenticated() bool {
	return s.ownerKey != "" && s.ownerKey != common.LocalOwnerKey
}
