// Package biquad provides second-order IIR sections.
//
// A [Section] runs the Direct Form I recurrence for a single set of
// [Coefficients] and keeps its own input/output history. The bass engine uses
// it as an all-pass whose output, subtracted from the dry input, yields a
// band-limited signal without a dedicated band-pass design.
//
// Coefficient derivation lives in dsp/filter/design.
package biquad
