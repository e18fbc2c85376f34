// Package logdata holds the depth-indexed well-log table the cleaning and
// gap-filling strategies operate on.
//
// A Frame is an ordered set of named measurement channels sharing one
// strictly ascending depth index. Missing samples are NaN, never zero, so
// every consumer has to decide explicitly how to treat a gap. Frames are
// value-oriented: strategies clone their input and write only to the clone,
// so sibling strategies never observe each other's intermediate state.
//
// Loading is supported from CSV (header row with a DEPT column) and from
// LAS 2.0 ASCII files (NULL sentinel, curve section, data block). Both map
// the null sentinel -999.25 to missing.
package logdata
