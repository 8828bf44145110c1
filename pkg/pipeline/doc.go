// Package pipeline runs named steps arranged as a directed acyclic graph.
//
// Steps declare which other steps they consume by name, and outputs are
// handed to dependents by reference. The graph is validated before any
// step runs: duplicate names, dependencies on steps that do not exist,
// and cycles are all build-time errors rather than runtime surprises.
//
// Execution is topological. Steps that become ready at the same time and
// are marked parallel run concurrently; the first failure cancels the
// remainder of the run.
package pipeline
