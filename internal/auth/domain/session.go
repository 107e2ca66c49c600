package domain

// Authed is what the food service needs to know about a caller.
type Authed interface {
	IsValid() bool
	ID() string
}

// Session is a resolved caller. A session that failed verification is still
// a Session, with Valid false.
type Session struct {
	Token  string
	UserID string
	Valid  bool
}

func (s Session) IsValid() bool {
	return s.Valid
}

func (s Session) ID() string {
	return s.UserID
}
