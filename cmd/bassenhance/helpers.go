package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-bass/dsp/bass"
)

const (
	stereoChannels = 2
	wavFormatPCM   = 1
	minBitDepth    = 8
	maxBitDepth    = 32

	// 8-bit PCM is unsigned with silence at 128.
	unsignedBitDepth = 8
	unsignedOffset   = 128
)

type renderStats struct {
	sampleRate int
	channels   int
	bitDepth   int
	frames     int
	blockSize  int
	slope      bass.Slope
}

// pcmFile is a decoded WAV file in planar float form.
type pcmFile struct {
	sampleRate int
	bitDepth   int
	planar     [][]float64
}

// readWAV decodes a PCM WAV file into planar samples scaled to [-1, 1).
func readWAV(path string) (*pcmFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	format := buf.Format
	if format == nil || format.NumChannels < 1 {
		return nil, fmt.Errorf("invalid WAV format: %s", path)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth < minBitDepth || bitDepth > maxBitDepth {
		return nil, fmt.Errorf("unsupported bit depth %d: %s", bitDepth, path)
	}

	return &pcmFile{
		sampleRate: format.SampleRate,
		bitDepth:   bitDepth,
		planar:     deinterleave(buf.Data, format.NumChannels, bitDepth),
	}, nil
}

// writeWAV encodes planar samples as PCM WAV.
func writeWAV(path string, pcm *pcmFile) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	channels := len(pcm.planar)
	enc := wav.NewEncoder(f, pcm.sampleRate, pcm.bitDepth, channels, wavFormatPCM)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: pcm.sampleRate},
		Data:           interleave(pcm.planar, pcm.bitDepth),
		SourceBitDepth: pcm.bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}

	return nil
}

// fullScale returns the magnitude of the most negative sample at bitDepth.
func fullScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

// pcmOffset returns the stored value of silence at bitDepth.
func pcmOffset(bitDepth int) int {
	if bitDepth == unsignedBitDepth {
		return unsignedOffset
	}

	return 0
}

// deinterleave splits interleaved integer samples into scaled channels.
func deinterleave(data []int, channels, bitDepth int) [][]float64 {
	frames := len(data) / channels
	inv := 1 / fullScale(bitDepth)
	offset := pcmOffset(bitDepth)

	planar := make([][]float64, channels)
	for ch := range planar {
		planar[ch] = make([]float64, frames)
	}

	for i := range frames {
		for ch := range channels {
			planar[ch][i] = float64(data[i*channels+ch]-offset) * inv
		}
	}

	return planar
}

// interleave converts planar channels to clipped integer samples.
func interleave(planar [][]float64, bitDepth int) []int {
	channels := len(planar)
	if channels == 0 {
		return nil
	}

	frames := len(planar[0])
	mixed := make([]float64, frames*channels)

	if channels == stereoChannels {
		f64.Interleave2(mixed, planar[0], planar[1])
	} else {
		for i := range frames {
			for ch := range channels {
				mixed[i*channels+ch] = planar[ch][i]
			}
		}
	}

	scale := fullScale(bitDepth)
	hi := scale - 1
	offset := pcmOffset(bitDepth)

	out := make([]int, len(mixed))
	for i, v := range mixed {
		s := v * scale
		switch {
		case s > hi:
			s = hi
		case s < -scale:
			s = -scale
		}

		out[i] = int(s) + offset
	}

	return out
}

// render processes planar audio in place in blocks of the engine's prepared
// block size, taking a parameter snapshot per block.
func render(engine *bass.Engine, planar [][]float64, params *bass.Parameters) {
	blockSize := engine.MaxBlockSamples()
	if len(planar) == 0 || blockSize <= 0 {
		return
	}

	frames := len(planar[0])
	active := min(len(planar), stereoChannels)
	block := make([][]float64, active)

	for pos := 0; pos < frames; pos += blockSize {
		end := min(pos+blockSize, frames)
		for ch := range active {
			block[ch] = planar[ch][pos:end]
		}

		engine.ProcessBlock(block, params.Snapshot())
	}
}

// renderFile reads input, renders it and writes output.
func renderFile(input, output string, params *bass.Parameters, slope bass.Slope, blockSize int, verbose bool) (*renderStats, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("block size must be positive: %d", blockSize)
	}

	pcm, err := readWAV(input)
	if err != nil {
		return nil, err
	}

	channels := len(pcm.planar)
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", pcm.sampleRate, channels, pcm.bitDepth)

		if channels > stereoChannels {
			log.Printf("Channels beyond %d are copied unprocessed", stereoChannels)
		}
	}

	engine, err := bass.New(bass.WithPostFilterSlope(slope))
	if err != nil {
		return nil, err
	}

	if err := engine.Prepare(float64(pcm.sampleRate), blockSize); err != nil {
		return nil, err
	}

	if verbose {
		log.Printf("Engine: %s post filter, %d-sample blocks", engine.PostFilterSlope(), engine.MaxBlockSamples())
	}

	render(engine, pcm.planar, params)

	if err := writeWAV(output, pcm); err != nil {
		return nil, err
	}

	return &renderStats{
		sampleRate: pcm.sampleRate,
		channels:   channels,
		bitDepth:   pcm.bitDepth,
		frames:     len(pcm.planar[0]),
		blockSize:  engine.MaxBlockSamples(),
		slope:      engine.PostFilterSlope(),
	}, nil
}
