package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("11111111-2222-3333-4444-555555555555"))
	assert.True(t, IsUUID("A1B2C3D4-E5F6-7890-ABCD-EF1234567890"))

	assert.False(t, IsUUID("user_2abcDEF"))
	assert.False(t, IsUUID("111111112222333344445555555555555"))
	assert.False(t, IsUUID("11111111-2222-3333-4444-55555555555"))
	assert.False(t, IsUUID(""))
}

func TestResolveUserRef(t *testing.T) {
	ref := ResolveUserRef("11111111-2222-3333-4444-555555555555")
	assert.Equal(t, ByCanonicalID, ref.Kind)
	assert.Equal(t, "id", ref.Column())

	ref = ResolveUserRef("user_2abcDEF")
	assert.Equal(t, ByExternalID, ref.Kind)
	assert.Equal(t, "clerk_id", ref.Column())
	assert.Equal(t, "user_2abcDEF", ref.Value)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", TruncateRunes("short", 120))

	long := ""
	for i := 0; i < 130; i++ {
		long += "a"
	}
	got := TruncateRunes(long, 120)
	assert.Equal(t, 121, len([]rune(got)))
	assert.Equal(t, "…", string([]rune(got)[120]))

	// Multibyte content truncates on rune boundaries
	assert.Equal(t, "héllo…", TruncateRunes("héllo wörld", 5))
}
