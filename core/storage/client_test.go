package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("Scheme is stripped from endpoint", func(t *testing.T) {
		client, err := NewClient(Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "key",
			SecretKey: "secret",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("Invalid endpoint", func(t *testing.T) {
		client, err := NewClient(Config{
			Endpoint: "http://bad endpoint with spaces",
		})
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}
