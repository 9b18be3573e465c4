// Package shaper provides stateless waveshaping functions for the bass
// engine's distortion stage.
//
//   - [SoftSaturate]: asymptotic soft clip x/(1+|x|), always within [-1, 1].
//   - [SignGate]: hard gate to sign; silence below the threshold, full-scale
//     square above it.
//   - [PowerCompress]: sign-preserving square of the clamped magnitude.
//
// All functions are pure and allocation-free. [Sign] returns 0 for a zero
// input, so the sign-based shapers never divide by zero.
package shaper
