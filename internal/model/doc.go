// Package model defines the shared data structures for article quality
// analysis: per-analyzer results, the aggregated final result, quality
// tiers, and the criterion weight table.
//
// All types in this package are plain data. They are produced once per
// analysis run and treated as immutable afterwards; consumers (the
// aggregator and the report writers) only read them.
package model
