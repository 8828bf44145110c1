package toolcall

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

func chartCatalog() []llm.Tool {
	return []llm.Tool{
		llm.NewFunctionTool(
			"top_song",
			"Get the most popular song played on a radio station.",
			llm.ObjectSchema(map[string]any{
				"sign": llm.StringProperty("The call sign of the radio station."),
			}, []string{"sign"}),
		),
	}
}

func TestBuildPromptEmbedsCatalogVerbatim(t *testing.T) {
	catalog := chartCatalog()

	prompt, err := BuildPrompt("What is the most popular song on WZPZ?", catalog)
	require.NoError(t, err)

	serialized, err := json.MarshalIndent(catalog, "", "  ")
	require.NoError(t, err)

	assert.Contains(t, prompt, string(serialized), "serialized catalog must appear verbatim")
	assert.Contains(t, prompt, "<thinking>")
	assert.Contains(t, prompt, "</thinking>")
	assert.Contains(t, prompt, "<tool_call>")
	assert.Contains(t, prompt, "</tool_call>")
	assert.Contains(t, prompt, "What is the most popular song on WZPZ?")
}

func TestBuildPromptRejectsEmptyInputs(t *testing.T) {
	_, err := BuildPrompt("", chartCatalog())
	assert.Error(t, err, "empty query must be rejected")

	_, err = BuildPrompt("a question", nil)
	assert.Error(t, err, "empty catalog must be rejected")
}

func TestBuildPromptDeterministic(t *testing.T) {
	first, err := BuildPrompt("same question", chartCatalog())
	require.NoError(t, err)
	second, err := BuildPrompt("same question", chartCatalog())
	require.NoError(t, err)

	assert.Equal(t, first, second, "same query and catalog must build the same prompt")
}
