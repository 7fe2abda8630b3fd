package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "wellness-admin context key " + string(c)
}

// RequestIDKey is the key for the request ID in context.Context
const RequestIDKey = contextKey("requestID")

// UserIDKey is the key for the authenticated subject ID in context.Context
const UserIDKey = contextKey("userID")

// UserEmailKey is the key for the authenticated user's email in context.Context
const UserEmailKey = contextKey("userEmail")

// RoleKey is the key for the authenticated user's role in context.Context
const RoleKey = contextKey("role")

// AccessTokenKey is the key for the backend access token in context.Context.
// The token never leaves the server side; it is read here only so the proxy
// layer can attach the bearer header on outgoing backend calls.
const AccessTokenKey = contextKey("accessToken")
