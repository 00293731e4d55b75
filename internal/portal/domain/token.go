package domain

// TokenPair is what a successful login or refresh hands back: a short-lived
// signed access token plus an opaque refresh token bound to a session row.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // always "Bearer"
	ExpiresIn    int64  // access token lifetime in seconds
	SessionID    string
}
