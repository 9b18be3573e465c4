// Package response measures the magnitude response of a block processor.
//
// A scaled unit impulse is rendered through the processor, the captured
// impulse response is transformed with a power-of-two FFT and the bin
// magnitudes are normalized by the impulse amplitude.
//
// # Usage
//
//	v, _ := bass.NewVoice(48000, bass.Slope6dB)
//	v.Configure(bass.DefaultParams())
//	r, err := response.Measure(v, 48000, 8192, 1e-3)
//	freq, db := r.Peak()
//
// Nonlinear processors respond differently to different amplitudes; keep
// the amplitude in the range the processor is linear in when comparing
// against analytic responses.
package response
