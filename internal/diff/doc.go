// Package diff models the per-endpoint difference tree produced by an
// external API-specification comparison engine and classifies it.
//
// An [Endpoint] carries diff lists scattered over its parameters, request
// and response bodies. [Classify] decides a single [Change] for the endpoint
// from its top-level diffs and flattens every diff touching it. [Aggregate]
// folds many endpoints into three disjoint operation sets, and [CountLabel]
// and [OperationLines] format them for reports.
package diff
