// Package onepole provides bilinear one-pole low-pass stages.
//
// [Section] is the 6 dB/octave building block used on its own as a post
// filter and four times over inside dsp/filter/ladder. [TwoPole] cascades two
// one-pole recurrences for a 12 dB/octave slope. The two types are
// independent: TwoPole does not embed Section, so neither can alias the
// other's history.
//
// Both stages keep their coefficients until a new cutoff is applied and never
// reset their history on a coefficient change.
package onepole
