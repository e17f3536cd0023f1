package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserBeforeSaveHashesPassword(t *testing.T) {
	user := &User{Email: "reader@example.com", Password: "plaintext-secret"}

	require.NoError(t, user.BeforeSave(nil))
	assert.True(t, strings.HasPrefix(user.Password, "$2a$"))
	assert.True(t, user.CheckPassword("plaintext-secret"))
	assert.False(t, user.CheckPassword("wrong"))

	// A second save must not re-hash the hash.
	hashed := user.Password
	require.NoError(t, user.BeforeSave(nil))
	assert.Equal(t, hashed, user.Password)
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}
