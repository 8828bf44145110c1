// Package tools holds the locally executed tool implementations that can
// be registered with a toolcall.Registry.
package tools

import (
	"context"
	"fmt"

	"github.com/arosling/go-toolbridge/pkg/llm"
	"github.com/arosling/go-toolbridge/pkg/toolcall"
)

// TopSongToolName is the name the model uses to request the chart lookup
const TopSongToolName = "top_song"

type chartEntry struct {
	song   string
	artist string
}

// stationCharts is the static chart data keyed by station call sign
var stationCharts = map[string]chartEntry{
	"WZPZ": {song: "Elemental Hotel", artist: "8 Storey Hike"},
}

// TopSongDescriptor returns the tool descriptor for the radio chart
// lookup, suitable for embedding in a prompt.
func TopSongDescriptor() llm.Tool {
	return llm.NewFunctionTool(
		TopSongToolName,
		"Get the most popular song played on a radio station.",
		llm.ObjectSchema(map[string]any{
			"sign": llm.StringProperty("The call sign of the radio station, for example WZPZ."),
		}, []string{"sign"}),
	)
}

// TopSongHandler looks up the most popular song for a station call sign.
// An unrecognized call sign is a domain error naming the station.
func TopSongHandler(_ context.Context, args map[string]any) (map[string]any, error) {
	sign, ok := args["sign"].(string)
	if !ok || sign == "" {
		return nil, fmt.Errorf("top_song requires a station call sign argument")
	}

	entry, ok := stationCharts[sign]
	if !ok {
		return nil, fmt.Errorf("unrecognized station %s", sign)
	}

	return map[string]any{
		"song":   entry.song,
		"artist": entry.artist,
	}, nil
}

// RegisterTopSong wires the chart lookup into a registry
func RegisterTopSong(registry *toolcall.Registry) error {
	return registry.Register(TopSongDescriptor(), TopSongHandler)
}
