// Package search wraps an Elasticsearch index that stores evaluation
// documents such as tool-call transcripts and run summaries.
//
// Index names are checked against configurable allow-list patterns
// before any operation touches the cluster.
package search
