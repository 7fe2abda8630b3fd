package repository

import (
	"context"
	"time"
)

// AuthEventKind enumerates the auditable authentication events.
type AuthEventKind string

const (
	EventLoginSucceeded AuthEventKind = "login_succeeded"
	EventLoginDenied    AuthEventKind = "login_denied"
	EventLogout         AuthEventKind = "logout"
)

// Denial cause classes recorded on EventLoginDenied. These distinguish, for
// operators only, the failure modes the browser sees as one generic message.
const (
	CauseMissingCredentials = "missing_credentials"
	CauseUpstreamRejected   = "upstream_rejected"
	CauseUpstreamDown       = "upstream_unavailable"
	CauseMalformedResponse  = "malformed_response"
	CauseRoleDenied         = "role_denied"
)

// AuthEvent is one operator-facing audit record.
type AuthEvent struct {
	ID        string        `bson:"_id,omitempty"`
	Kind      AuthEventKind `bson:"kind"`
	SubjectID string        `bson:"subject_id,omitempty"`
	Email     string        `bson:"email,omitempty"`
	Role      string        `bson:"role,omitempty"`
	Cause     string        `bson:"cause,omitempty"`
	At        time.Time     `bson:"at"`
}

// AuditRepository persists authentication events. Recording is best effort;
// a failed write never fails the exchange it describes.
type AuditRepository interface {
	Record(ctx context.Context, event *AuthEvent) error
}
