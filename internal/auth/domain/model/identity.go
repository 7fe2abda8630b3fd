package model

// Identity is the outcome of a successful credential exchange: the minimal
// administrative actor plus the backend-issued access token. The token only
// ever travels inside the signed session cookie and the server-side request
// context.
type Identity struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	AccessToken string `json:"-"`
}

// Credentials is the transient login input. It is never persisted and never
// logged; it lives only for the duration of one exchange call.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
