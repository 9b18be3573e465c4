// Package design derives digital filter coefficients with the bilinear
// transform.
//
// The designers here are pure: identical (frequency, sample rate, Q) inputs
// always produce bit-identical coefficients. They do not clamp frequencies;
// callers bound their parameter ranges so that frequencies stay inside
// (0, sampleRate/2). When the sample rate is not known yet the designers
// report ok == false and callers keep whatever coefficients they already hold.
//
// Runtime processing lives in dsp/filter/onepole, dsp/filter/ladder and
// dsp/filter/biquad.
package design
