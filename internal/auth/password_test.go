package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
