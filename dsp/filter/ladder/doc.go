// Package ladder provides a linear four-pole resonant ladder low-pass.
//
// The ladder cascades four bilinear one-pole stages from dsp/filter/onepole
// and feeds the previous output back to the input scaled by the resonance k:
//
//	u[n] = x[n] - k*y[n-1]
//	y[n] = LP4(u[n])
//
// Resonance is not clamped. Values near 4 approach self-oscillation and
// larger values diverge; bounding k is the caller's job.
package ladder
