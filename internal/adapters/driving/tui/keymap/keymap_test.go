package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		key     string
		matches bool
		binding func(*KeyMap) []string
	}{
		{name: "ctrl+g generates", key: "ctrl+g", matches: true, binding: func(k *KeyMap) []string { return k.Generate.Keys() }},
		{name: "tab toggles tool", key: "tab", matches: true, binding: func(k *KeyMap) []string { return k.ToggleTool.Keys() }},
		{name: "ctrl+s saves", key: "ctrl+s", matches: true, binding: func(k *KeyMap) []string { return k.Save.Keys() }},
		{name: "esc quits", key: "esc", matches: true, binding: func(k *KeyMap) []string { return k.Quit.Keys() }},
		{name: "enter does not generate", key: "enter", matches: false, binding: func(k *KeyMap) []string { return k.Generate.Keys() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, contains(tt.binding(km), tt.key))
		})
	}
}

func contains(keys []string, k string) bool {
	for _, candidate := range keys {
		if candidate == k {
			return true
		}
	}
	return false
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("ctrl+g", km.Generate))
	assert.True(t, Matches("ctrl+enter", km.Generate))
	assert.False(t, Matches("q", km.Quit), "q must stay typeable in the query")
}

func TestHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 4)
	full := km.FullHelp()
	require.Len(t, full, 2)
	assert.Len(t, full[0], 3)
	assert.Equal(t, "generate", km.Generate.Help().Desc)
}
