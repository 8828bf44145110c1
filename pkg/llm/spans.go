// Delimiter-span helpers for free-form model output
package llm

import (
	"fmt"
	"regexp"
	"strings"
)

// ExtractTagBlocks returns the inner text of every <tag>...</tag> block in
// the input, in order of appearance.
//
// The match is a plain regular expression over generated free text. There
// is no escaping or nesting protection: a literal delimiter appearing
// inside a span will corrupt the match. This is a documented limitation of
// prompt-embedded protocols; models with native structured output should
// be preferred where available.
func ExtractTagBlocks(text, tag string) []string {
	pattern := fmt.Sprintf(`(?s)<%s>(.*?)</%s>`, regexp.QuoteMeta(tag), regexp.QuoteMeta(tag))
	re := regexp.MustCompile(pattern)

	var blocks []string
	for _, match := range re.FindAllStringSubmatch(text, -1) {
		blocks = append(blocks, strings.TrimSpace(match[1]))
	}
	return blocks
}

// ExtractFirstTagBlock returns the first <tag>...</tag> block's inner
// text, and whether one was found.
func ExtractFirstTagBlock(text, tag string) (string, bool) {
	blocks := ExtractTagBlocks(text, tag)
	if len(blocks) == 0 {
		return "", false
	}
	return blocks[0], true
}

// RemoveTagBlocks removes all <tag>...</tag> blocks from the input.
//
// Example:
//
//	cleaned := RemoveTagBlocks("Hello <thinking>internal</thinking> world", "thinking")
//	// "Hello  world"
func RemoveTagBlocks(text, tag string) string {
	pattern := fmt.Sprintf(`(?s)<%s>.*?</%s>`, regexp.QuoteMeta(tag), regexp.QuoteMeta(tag))
	return regexp.MustCompile(pattern).ReplaceAllString(text, "")
}
