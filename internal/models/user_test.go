// internal/models/user_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("Password1"))

	assert.NotEqual(t, "Password1", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("Password1"))
	assert.Error(t, user.CheckPassword("password1"))
	assert.Error(t, user.CheckPassword(""))
}

func TestIsDistributor(t *testing.T) {
	assert.True(t, (&User{UserType: UserTypeDistributor}).IsDistributor())
	assert.False(t, (&User{UserType: UserTypeCustomer}).IsDistributor())
	assert.False(t, (&User{}).IsDistributor())
}
