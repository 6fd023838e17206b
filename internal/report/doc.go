// Package report holds the comparison results handed over by the external
// comparison engine and builds the surface-independent [Summary] that every
// renderer consumes.
//
// A rendered report is identified by a hidden marker comment carrying the
// commit it was produced for. [Marker], [ParseMarker] and [MarkerPrefix] are
// the contract a comment poster uses to find and replace an earlier report.
package report
