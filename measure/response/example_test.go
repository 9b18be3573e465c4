package response_test

import (
	"fmt"

	"github.com/cwbudde/algo-bass/dsp/filter/onepole"
	"github.com/cwbudde/algo-bass/measure/response"
)

func ExampleMeasure() {
	lp, err := onepole.New(48000)
	if err != nil {
		panic(err)
	}

	lp.SetCutoff(500)

	r, err := response.Measure(lp, 48000, 4096, 1)
	if err != nil {
		panic(err)
	}

	freq, _ := r.Peak()
	fmt.Printf("peak %.0f Hz, 5 kHz %.1f dB\n", freq, r.MagnitudeDBAt(5000))

	// Output:
	// peak 0 Hz, 5 kHz -20.4 dB
}
