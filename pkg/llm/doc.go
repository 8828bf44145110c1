// Package llm defines the provider-agnostic types used to talk to hosted
// text-generation endpoints: conversations as ordered role/content turns,
// chat requests and responses with a choices list, tool descriptors and
// tool calls, and a standardized error type.
//
// The package is transport-free. Concrete endpoint clients live under
// pkg/providers and implement the Client interface defined here; they are
// created through pkg/factory from an explicit ClientConfig built at
// process start.
package llm
