// Package bedrock implements llm.Client on the AWS Bedrock Converse API.
//
// Unlike per-model invoke payloads, Converse accepts one request shape for
// every hosted model family, so the client does not branch on model IDs.
// System turns are lifted into the dedicated system field; tool result
// turns travel as regular user turns since the protocol embeds them in
// the conversation text.
package bedrock
