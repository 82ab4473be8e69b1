package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, VerifyPassword("hunter22", hash))
	assert.False(t, VerifyPassword("hunter23", hash))
	assert.False(t, VerifyPassword("hunter22", "not-a-bcrypt-hash"))
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerifyStatic(t *testing.T) {
	tests := []struct {
		name               string
		user, pass         string
		wantUser, wantPass string
		ok                 bool
	}{
		{"match", "root", "pw", "root", "pw", true},
		{"wrong password", "root", "px", "root", "pw", false},
		{"wrong user", "admin", "pw", "root", "pw", false},
		{"prefix", "roo", "pw", "root", "pw", false},
		{"unconfigured", "", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, VerifyStatic(tt.user, tt.pass, tt.wantUser, tt.wantPass))
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	tests := []struct {
		name   string
		length int
		valid  bool
	}{
		{"minimum length", 4, true},
		{"medium length", 12, true},
		{"long length", 32, true},
		{"too short", 3, false},
		{"zero", 0, false},
		{"negative", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GeneratePassword(tt.length)
			if !tt.valid {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, result, tt.length)
			for _, cs := range charsets {
				assert.True(t, strings.ContainsAny(result, cs), "missing one of %q in %q", cs, result)
			}
		})
	}
}

func TestGeneratePasswordAlphabet(t *testing.T) {
	all := strings.Join(charsets, "")
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		result, err := GeneratePassword(16)
		require.NoError(t, err)

		for _, c := range result {
			require.True(t, strings.ContainsRune(all, c), "unexpected %q in %q", c, result)
		}
		require.NotContains(t, seen, result)
		seen[result] = true
	}
}
