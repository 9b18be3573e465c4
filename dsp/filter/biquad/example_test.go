package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-bass/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	s := biquad.NewSection(biquad.Coefficients{B0: 0.5, B1: 0.5})

	for _, x := range []float64{1, 1, 0, 0} {
		fmt.Printf("%.2f ", s.ProcessSample(x))
	}

	fmt.Println()

	// Output:
	// 0.50 1.00 0.50 0.00
}
