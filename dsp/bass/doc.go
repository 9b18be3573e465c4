// Package bass implements a sample-synchronous stereo bass enhancer.
//
// Each channel is rendered by a [Voice] that band-limits the input around a
// center frequency, drives it into a waveshaper, filters the result and mixes
// it back with the dry signal. Four character modes select the filter and
// shaper topology:
//
//   - [ModeA]: resonant ladder low-pass, soft saturation, post low-pass.
//   - [ModeB]: band-pass, soft saturation, post low-pass.
//   - [ModeC]: band-pass, sign gate, resonant ladder low-pass.
//   - [ModeD]: band-pass, power-law compression, resonant ladder low-pass.
//
// An [Engine] owns two independent voices and processes planar blocks in
// place. Parameters arrive as an immutable [Params] value once per block;
// [Parameters] offers a lock-free store for hosts that update values from a
// control thread.
//
// Rendering never allocates, locks or performs I/O. Engines and voices are not
// safe for concurrent use.
package bass
