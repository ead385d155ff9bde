package utils

import "regexp"

// Moderation endpoints accept a user either by canonical UUID or by the
// Clerk id the identity provider assigned. The format is detected up
// front and the resulting UserRef decides which column the lookup hits.

// IDKind says which column a UserRef should be matched against.
type IDKind int

const (
	ByCanonicalID IDKind = iota
	ByExternalID
)

var uuidShape = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// UserRef is a resolved user identifier
type UserRef struct {
	Kind  IDKind
	Value string
}

// Column returns the DB column the ref matches on
func (r UserRef) Column() string {
	if r.Kind == ByExternalID {
		return "clerk_id"
	}
	return "id"
}

// IsUUID reports whether s has strict hyphenated UUID shape
func IsUUID(s string) bool {
	return uuidShape.MatchString(s)
}

// ResolveUserRef classifies an incoming identifier string
func ResolveUserRef(s string) UserRef {
	if IsUUID(s) {
		return UserRef{Kind: ByCanonicalID, Value: s}
	}
	return UserRef{Kind: ByExternalID, Value: s}
}
