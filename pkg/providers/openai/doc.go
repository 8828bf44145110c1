// Package openai implements llm.Client for the OpenAI chat completions
// API and any OpenAI-compatible server reachable through a custom base URL.
package openai
