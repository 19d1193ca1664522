package rbac

// Session is the immutable, already-fetched state the guard evaluates
// against. It is built once per request by the auth middleware (login is the
// single mutation entry point) and never written to afterwards.
type Session struct {
	UserID      int64
	Email       string
	Level       Level // highest level across assignments; empty when the user has none
	Permissions PermissionSet
}

// HasLevel reports whether the session carries a recognized role level.
func (s Session) HasLevel() bool {
	return s.Level.IsValid()
}

// Decision is the three-state outcome of a capability check.
type Decision int

const (
	// DecisionUnauthenticated: no valid session; callers redirect to login.
	DecisionUnauthenticated Decision = iota
	// DecisionUnauthorized: valid session, membership test failed. The
	// capability stays hidden; there is no fallback grant.
	DecisionUnauthorized
	// DecisionAuthorized: capability may be rendered or executed.
	DecisionAuthorized
)

func (d Decision) String() string {
	switch d {
	case DecisionUnauthenticated:
		return "unauthenticated"
	case DecisionUnauthorized:
		return "unauthorized"
	case DecisionAuthorized:
		return "authorized"
	}
	return "unknown"
}

// Allowed is a convenience for the common yes/no question.
func (d Decision) Allowed() bool {
	return d == DecisionAuthorized
}

// CheckLevels gates a capability on an allow-list of role levels. A session
// without a level, or with an unrecognized one, is denied rather than
// erroring: the membership test on a missing role must return false, never
// throw. A nil session pointer means no authentication happened at all.
func CheckLevels(session *Session, allowed ...Level) Decision {
	if session == nil {
		return DecisionUnauthenticated
	}
	if !session.Level.IsValid() {
		return DecisionUnauthorized
	}
	for _, l := range allowed {
		if session.Level == l {
			return DecisionAuthorized
		}
	}
	return DecisionUnauthorized
}

// CheckPermission gates a capability on exact membership of one permission
// name in the session's resolved set. Case-sensitive, no prefix or wildcard
// matching. An empty set denies everything (fail-closed).
func CheckPermission(session *Session, required PermissionName) Decision {
	if session == nil {
		return DecisionUnauthenticated
	}
	if session.Permissions.Has(required) {
		return DecisionAuthorized
	}
	return DecisionUnauthorized
}
