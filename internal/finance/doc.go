// Package finance turns normalized bookkeeping entries into chart-ready
// series and summary figures.
//
// Everything here is a pure function of its arguments: inputs are never
// mutated, nothing is cached and identical inputs give identical outputs.
// Amounts stay in the reference currency; conversion and label translation
// belong to the caller.
package finance
