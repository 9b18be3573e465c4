package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-bass/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithMaxBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f maxBlockSize=%d\n", cfg.SampleRate, cfg.MaxBlockSize)

	// Output:
	// sampleRate=44100 maxBlockSize=256
}

func ExampleDBToLinear() {
	fmt.Printf("%.4f %.4f\n", core.DBToLinear(0), core.DBToLinear(-20))

	// Output:
	// 1.0000 0.1000
}
