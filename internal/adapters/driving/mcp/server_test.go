package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing generation service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingGenerationService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports, _, _ := testPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("empty ports", func(t *testing.T) {
		assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingGenerationService)
	})

	t.Run("missing retrieval", func(t *testing.T) {
		ports := &Ports{Generation: &mockGenerationService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingRetrievalService)
	})

	t.Run("settings is optional", func(t *testing.T) {
		ports, _, _ := testPorts()
		assert.NoError(t, ports.Validate())

		ports.Settings = &mockSettingsService{}
		assert.NoError(t, ports.Validate())
	})
}
