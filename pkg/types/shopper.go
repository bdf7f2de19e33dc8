package types

import "strings"

// Shopper identifies the requester: a user id when one was supplied, plus the
// anonymous session id minted by the cookie middleware.
type Shopper struct {
	UserID    *string
	SessionID string
}

// NewShopper normalizes raw identifiers into a Shopper.
func NewShopper(userID, sessionID string) Shopper {
	s := Shopper{SessionID: strings.TrimSpace(sessionID)}
	if trimmed := strings.TrimSpace(userID); trimmed != "" {
		s.UserID = &trimmed
	}
	return s
}

// HasIdentity reports whether at least one identifier is present.
func (s Shopper) HasIdentity() bool {
	return s.UserID != nil || s.SessionID != ""
}

// User returns the user id or empty string.
func (s Shopper) User() string {
	if s.UserID == nil {
		return ""
	}
	return *s.UserID
}
