// Command bassenhance renders a WAV file through the bass enhancer.
//
// Usage:
//
//	bassenhance [flags] input.wav output.wav
//
// Examples:
//
//	bassenhance --frequency 60 --drive 0.8 in.wav out.wav
//	bassenhance --mode C --mix 0.4 --volume -3 in.wav out.wav
//	bassenhance --slope 12 --block 256 -v in.wav out.wav
//
// Mono and stereo files are processed; further channels are copied through.
// The output keeps the input's sample rate and bit depth.
package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-bass/dsp/bass"
)

// CLI defines the command-line interface.
type CLI struct {
	Input     string  `arg:"" name:"input" type:"existingfile" help:"Input WAV file."`
	Output    string  `arg:"" name:"output" type:"path" help:"Output WAV file."`
	Frequency float64 `short:"f" default:"80" help:"Center frequency in Hz (40-400)."`
	Drive     float64 `short:"d" default:"0.5" help:"Drive amount (0-1)."`
	Mix       float64 `short:"m" default:"1" help:"Wet proportion (0-1)."`
	Volume    float64 `default:"0" help:"Output trim in dB (-24 to 24)."`
	Mode      string  `default:"A" enum:"A,B,C,D,a,b,c,d" help:"Processing mode (A, B, C or D)."`
	Slope     int     `default:"6" enum:"6,12" help:"Post filter slope of modes A and B in dB/octave."`
	Block     int     `default:"512" help:"Processing block size in samples."`
	Verbose   bool    `short:"v" help:"Verbose output."`
}

func main() {
	var cli CLI

	kong.Parse(&cli,
		kong.Name("bassenhance"),
		kong.Description("Render a WAV file through the bass enhancer."),
		kong.UsageOnError(),
	)

	if err := run(&cli); err != nil {
		log.Fatal(err)
	}
}

func run(cli *CLI) error {
	params, err := cli.parameters()
	if err != nil {
		return err
	}

	slope, err := parseSlope(cli.Slope)
	if err != nil {
		return err
	}

	if cli.Verbose {
		s := params.Snapshot()
		log.Printf("Input: %s", cli.Input)
		log.Printf("Output: %s", cli.Output)
		log.Printf("Frequency: %.1f Hz, drive %.2f, mix %.2f, volume %.1f dB", s.FrequencyHz, s.Drive, s.Mix, s.VolumeDB)
		log.Printf("Mode: %s, post filter %s, block %d", s.Mode, slope, cli.Block)
	}

	start := time.Now()

	stats, err := renderFile(cli.Input, cli.Output, params, slope, cli.Block, cli.Verbose)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	fmt.Printf("Rendered %s -> %s\n", filepath.Base(cli.Input), filepath.Base(cli.Output))
	fmt.Printf("  %d Hz, %d channels, %d-bit, %d frames\n",
		stats.sampleRate, stats.channels, stats.bitDepth, stats.frames)

	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
			secs, float64(stats.frames)/float64(stats.sampleRate)/secs)
	}

	return nil
}

// parameters builds the parameter store from the flags. Values outside the
// accepted ranges are clamped.
func (c *CLI) parameters() (*bass.Parameters, error) {
	mode, err := bass.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}

	p := bass.NewParameters()
	p.SetFrequency(c.Frequency)
	p.SetDrive(c.Drive)
	p.SetMix(c.Mix)
	p.SetVolumeDB(c.Volume)

	if err := p.SetMode(mode); err != nil {
		return nil, err
	}

	return p, nil
}

func parseSlope(db int) (bass.Slope, error) {
	switch db {
	case 6:
		return bass.Slope6dB, nil
	case 12:
		return bass.Slope12dB, nil
	default:
		return 0, fmt.Errorf("unsupported post filter slope: %d dB", db)
	}
}
