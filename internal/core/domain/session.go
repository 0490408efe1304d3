package domain

// Session is the server-side state associated with an opaque session
// identifier. The identifier itself is issued by the transport layer and
// only used as a key here.
type Session struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
