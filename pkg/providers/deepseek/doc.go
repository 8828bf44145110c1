// Package deepseek implements llm.Client for the DeepSeek chat API.
package deepseek
