// Package toolcall implements a prompt-embedded tool-calling round trip
// against a hosted text-generation endpoint.
//
// The protocol is textual: the tool catalog is serialized into the prompt
// together with two fixed delimiter pairs, the model is asked to emit at
// most one <thinking> span and at most one <tool_call> span, the requested
// tool is executed locally through a closed registry, and the wrapped
// result is sent back for a final natural-language answer.
//
// A round trip is strictly linear: awaiting the initial reply, parsing the
// tool call, awaiting the final reply, done. Exactly one tool call is
// supported per query; any transport or parse failure at any point is
// terminal and propagates to the caller unchanged. Multi-step tool chains,
// concurrent tool calls, and retries are deliberately out of scope.
package toolcall
