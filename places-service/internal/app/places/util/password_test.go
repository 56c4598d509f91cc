package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Success(t *testing.T) {
	hash, err := HashPassword("s3cret!")

	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPassword("s3cret!", hash))
}

func TestCheckPassword_Wrong(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.False(t, CheckPassword("other", hash))
	assert.False(t, CheckPassword("s3cret!", "not-a-hash"))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err1 := HashPassword("same")
	second, err2 := HashPassword("same")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotEqual(t, first, second)
}
