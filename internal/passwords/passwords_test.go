package passwords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("s3cret-runway")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	assert.NoError(t, Verify("s3cret-runway", encoded))
	assert.ErrorIs(t, Verify("wrong", encoded), ErrMismatch)
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("same-password")
	require.NoError(t, err)
	b, err := Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyMalformed(t *testing.T) {
	assert.Error(t, Verify("anything", "not-a-hash"))
	assert.Error(t, Verify("anything", "$argon2id$v=19$m=65536,t=1,p=4$!!$!!"))
}
