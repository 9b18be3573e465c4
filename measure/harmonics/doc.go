// Package harmonics measures the harmonic content a processor adds to a
// sine tone.
//
// The signal is Hann-windowed, transformed with a power-of-two FFT, and the
// energy around the fundamental and each integer multiple is summed over a
// few bins on either side. Levels are reported relative to the fundamental:
//
//	THD    = sqrt(H2^2 + H3^2 + ...) / H1
//	OddHD  = sqrt(H3^2 + H5^2 + ...) / H1
//	EvenHD = sqrt(H2^2 + H4^2 + ...) / H1
//
// Use [Analyze] on a captured signal or [Measure] to drive a processor with
// a test tone first.
package harmonics
