package config

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetenv(t *testing.T) {
	t.Setenv("GUESSWHO_TEST_KEY", "set-value")

	assert.Equal(t, "set-value", Getenv("GUESSWHO_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", Getenv("GUESSWHO_TEST_KEY_MISSING", "fallback"))
}

func TestCreateUniqueInstance(t *testing.T) {
	id := CreateUniqueInstance("test")

	_, err := uuid.FromString(id)
	require.NoError(t, err)
	assert.Equal(t, id, GetInstanceId())
}

func TestCORS(t *testing.T) {
	assert.NotNil(t, CORS())
}
