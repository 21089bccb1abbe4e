package request

// Session holds the credentials attached to session-scoped requests.
type Session struct {
	TokenType string
	Token     string
}

// NewSession creates a session for the given token scheme and token.
func NewSession(tokenType, token string) Session {
	return Session{TokenType: tokenType, Token: token}
}

// Authorization returns the Authorization header value for the session.
func (s Session) Authorization() string {
	return s.TokenType + " " + s.Token
}

// SessionSource provides the active session at the time an operation is invoked.
type SessionSource interface {
	ActiveSession() (Session, error)
}

// SessionFunc adapts a function to SessionSource.
type SessionFunc func() (Session, error)

// ActiveSession calls f.
func (f SessionFunc) ActiveSession() (Session, error) {
	return f()
}
