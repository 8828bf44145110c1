// Package experiments tracks evaluation runs locally.
//
// A run groups the parameters, step-indexed metrics, and artifact
// references produced by one execution of a pipeline. Runs get a
// generated ID at start and carry an explicit status at end, so partial
// runs are distinguishable from completed ones. Persistence sits behind
// the Store interface; the bundled implementation uses SQLite.
package experiments
