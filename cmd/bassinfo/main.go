// Command bassinfo prints the small-signal magnitude response and harmonic
// distortion of every bass enhancer mode.
//
// Usage:
//
//	bassinfo [flags]
//
// Examples:
//
//	bassinfo
//	bassinfo --frequency 60 --drive 0.8
//	bassinfo --slope 12 --sample-rate 44100
//	bassinfo --mode B --mode D
package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-bass/dsp/bass"
	"github.com/cwbudde/algo-bass/dsp/core"
	"github.com/cwbudde/algo-bass/measure/harmonics"
	"github.com/cwbudde/algo-bass/measure/response"
)

// CLI defines the command-line interface.
type CLI struct {
	Frequency  float64  `short:"f" default:"80" help:"Center frequency in Hz (40-400)."`
	Drive      float64  `short:"d" default:"0.5" help:"Drive amount (0-1)."`
	SampleRate float64  `name:"sample-rate" default:"48000" help:"Sample rate in Hz."`
	Size       int      `default:"32768" help:"Impulse response length and FFT size (power of two)."`
	Amplitude  float64  `default:"0.001" help:"Impulse amplitude for the response measurement."`
	Level      float64  `default:"0.5" help:"Sine amplitude for the distortion measurement."`
	Slope      int      `default:"6" enum:"6,12" help:"Post filter slope of modes A and B in dB/octave."`
	Modes      []string `name:"mode" short:"m" help:"Modes to report; all when omitted."`
	Verbose    bool     `short:"v" help:"Verbose output."`
}

// row is one line of the report.
type row struct {
	label    string
	peakHz   float64
	peakDB   float64
	probesDB []float64
	thdDB    float64
}

// probeRatios are the report columns as multiples of the center frequency.
var probeRatios = []float64{0.5, 1, 2, 4}

func main() {
	var cli CLI

	kong.Parse(&cli,
		kong.Name("bassinfo"),
		kong.Description("Print per-mode response and distortion of the bass enhancer."),
		kong.UsageOnError(),
	)

	if err := run(&cli, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(cli *CLI, w io.Writer) error {
	modes, err := resolveModes(cli.Modes)
	if err != nil {
		return err
	}

	slope := bass.Slope6dB
	if cli.Slope == 12 {
		slope = bass.Slope12dB
	}

	params := bass.NewParameters()
	params.SetFrequency(cli.Frequency)
	params.SetDrive(cli.Drive)

	base := params.Snapshot()

	if cli.Verbose {
		log.Printf("Frequency: %.1f Hz, drive %.2f, slope %s", base.FrequencyHz, base.Drive, slope)
		log.Printf("Sample rate: %.0f Hz, FFT size %d", cli.SampleRate, cli.Size)
	}

	rows := make([]row, 0, len(modes))

	for _, mode := range modes {
		p := base
		p.Mode = mode

		r, err := analyzeMode(p, slope, cli)
		if err != nil {
			return fmt.Errorf("mode %s: %w", mode, err)
		}

		rows = append(rows, r)
	}

	band, err := bandRow(base, slope, cli.SampleRate)
	if err != nil {
		return err
	}

	rows = append(rows, band)

	return printTable(w, base.FrequencyHz, rows)
}

// resolveModes parses mode names, defaulting to all modes.
func resolveModes(names []string) ([]bass.Mode, error) {
	if len(names) == 0 {
		return bass.Modes[:], nil
	}

	modes := make([]bass.Mode, 0, len(names))

	for _, name := range names {
		m, err := bass.ParseMode(name)
		if err != nil {
			return nil, err
		}

		modes = append(modes, m)
	}

	return modes, nil
}

func newVoice(p bass.Params, slope bass.Slope, sampleRate float64) (*bass.Voice, error) {
	v, err := bass.NewVoice(sampleRate, slope)
	if err != nil {
		return nil, err
	}

	v.Configure(p)

	return v, nil
}

func analyzeMode(p bass.Params, slope bass.Slope, cli *CLI) (row, error) {
	p.Mix = 1

	v, err := newVoice(p, slope, cli.SampleRate)
	if err != nil {
		return row{}, err
	}

	resp, err := response.Measure(v, cli.SampleRate, cli.Size, cli.Amplitude)
	if err != nil {
		return row{}, err
	}

	out := row{label: p.Mode.String()}
	out.peakHz, out.peakDB = resp.Peak()

	for _, ratio := range probeRatios {
		out.probesDB = append(out.probesDB, resp.MagnitudeDBAt(ratio*p.FrequencyHz))
	}

	// A fresh voice so the distortion run starts from silence.
	v, err = newVoice(p, slope, cli.SampleRate)
	if err != nil {
		return row{}, err
	}

	binHz := cli.SampleRate / float64(cli.Size)
	fundamental := math.Max(1, math.Round(p.FrequencyHz/binHz)) * binHz

	dist, err := harmonics.Measure(v, harmonics.Config{
		SampleRate:    cli.SampleRate,
		FundamentalHz: fundamental,
		FFTSize:       cli.Size,
	}, cli.Level, int(cli.SampleRate))
	if err != nil {
		return row{}, err
	}

	out.thdDB = dist.THDdB

	return out, nil
}

// bandRow reports the analytic response of the band isolation stage shared
// by modes B to D.
func bandRow(p bass.Params, slope bass.Slope, sampleRate float64) (row, error) {
	v, err := newVoice(p, slope, sampleRate)
	if err != nil {
		return row{}, err
	}

	out := row{
		label:  "band",
		peakHz: p.FrequencyHz,
		peakDB: core.LinearToDB(v.BandGain(p.FrequencyHz)),
		thdDB:  math.NaN(),
	}

	for _, ratio := range probeRatios {
		out.probesDB = append(out.probesDB, core.LinearToDB(v.BandGain(ratio*p.FrequencyHz)))
	}

	return out, nil
}

func printTable(w io.Writer, centerHz float64, rows []row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "Mode\tPeak Hz\tPeak dB\t")

	for _, ratio := range probeRatios {
		fmt.Fprintf(tw, "%.0f Hz\t", ratio*centerHz)
	}

	fmt.Fprint(tw, "THD dB\t\n")

	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.1f\t%s\t", r.label, r.peakHz, formatDB(r.peakDB))

		for _, db := range r.probesDB {
			fmt.Fprintf(tw, "%s\t", formatDB(db))
		}

		fmt.Fprintf(tw, "%s\t\n", formatDB(r.thdDB))
	}

	return tw.Flush()
}

func formatDB(db float64) string {
	switch {
	case math.IsNaN(db):
		return "-"
	case math.IsInf(db, -1):
		return "-inf"
	}

	return fmt.Sprintf("%.1f", db)
}
