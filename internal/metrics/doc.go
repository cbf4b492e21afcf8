// Package metrics derives filtered slices, rankings, aggregates and the
// dashboard's summary views from an immutable category table. Every function
// is pure: inputs are never modified and identical inputs give identical
// results.
package metrics
