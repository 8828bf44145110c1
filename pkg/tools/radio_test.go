package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arosling/go-toolbridge/pkg/llm"
	"github.com/arosling/go-toolbridge/pkg/toolcall"
)

func TestTopSongKnownStation(t *testing.T) {
	out, err := TopSongHandler(context.Background(), map[string]any{"sign": "WZPZ"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"song":   "Elemental Hotel",
		"artist": "8 Storey Hike",
	}, out)
}

func TestTopSongUnknownStation(t *testing.T) {
	_, err := TopSongHandler(context.Background(), map[string]any{"sign": "WKRP"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WKRP", "error must name the unrecognized station")
}

func TestTopSongMissingArgument(t *testing.T) {
	_, err := TopSongHandler(context.Background(), map[string]any{})
	assert.Error(t, err)

	_, err = TopSongHandler(context.Background(), map[string]any{"sign": 42})
	assert.Error(t, err)
}

func TestTopSongDescriptorShape(t *testing.T) {
	desc := TopSongDescriptor()
	assert.Equal(t, "function", desc.Type)
	assert.Equal(t, TopSongToolName, desc.Function.Name)
	assert.NotEmpty(t, desc.Function.Description)

	params, ok := desc.Function.Parameters.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"sign"}, params["required"])
}

func TestRegisterTopSong(t *testing.T) {
	reg := toolcall.NewRegistry()
	require.NoError(t, RegisterTopSong(reg))
	assert.NoError(t, reg.Validate([]llm.Tool{TopSongDescriptor()}))
}
