// Package score aggregates the analyzer results into the final
// 100-point quality assessment.
//
// The aggregator owns everything that spans more than one analyzer: the
// layered adjustments on the reference subscore, the penalty function
// that turns the language record into a 0-10 subscore, the rescaling of
// raw analyzer scores onto their criterion weights, and the fixed-order
// note consolidation. Aggregation is deterministic; two runs over the
// same analysis set produce identical results apart from the timestamp.
package score
