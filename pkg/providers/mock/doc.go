// Package mock provides a scriptable llm.Client for tests: replies and
// errors are queued up front and returned in order, and every request is
// recorded for assertions. No network access is involved.
package mock
