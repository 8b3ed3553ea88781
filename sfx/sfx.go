// Package sfx synthesizes the game's sound effects and writes them as WAV
// files.
//
// Every effect is a Recipe: a mono waveform as a function of time. Noise is
// drawn from a source seeded per recipe, so rendering is deterministic and
// regenerated files do not change.
package sfx

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"
)

// DefaultSampleRate matches what the browser's audio context uses.
const DefaultSampleRate = beep.SampleRate(44100)

// Recipe describes one sound effect.
type Recipe struct {
	Name     string
	Duration time.Duration
	// Normalize, if positive, scales the rendered sound so that its peak
	// amplitude equals Normalize.
	Normalize float64
	Seed      int64
	// Wave returns the sample at t seconds, nominally within [-1, 1].
	Wave func(t float64, rng *rand.Rand) float64
}

// Render returns the samples of r at the passed rate, clamped to [-1, 1].
func (r Recipe) Render(rate beep.SampleRate) []float64 {
	buf := make([]float64, rate.N(r.Duration))
	rng := rand.New(rand.NewSource(r.Seed))
	for i := range buf {
		buf[i] = r.Wave(float64(i)/float64(rate), rng)
	}

	if r.Normalize > 0 {
		peak := 0.0
		for _, s := range buf {
			peak = math.Max(peak, math.Abs(s))
		}
		if peak > 0 {
			for i := range buf {
				buf[i] = buf[i] / peak * r.Normalize
			}
		}
	}
	for i, s := range buf {
		buf[i] = math.Max(-1, math.Min(1, s))
	}
	return buf
}

// Streamer returns r rendered at rate as a beep.Streamer, with the mono
// signal on both channels.
func (r Recipe) Streamer(rate beep.SampleRate) beep.Streamer {
	return &bufferStreamer{buf: r.Render(rate)}
}

type bufferStreamer struct {
	buf []float64
	pos int
}

func (b *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if b.pos >= len(b.buf) {
		return 0, false
	}
	for n < len(samples) && b.pos < len(b.buf) {
		samples[n][0] = b.buf[b.pos]
		samples[n][1] = b.buf[b.pos]
		n++
		b.pos++
	}
	return n, true
}

func (b *bufferStreamer) Err() error { return nil }

// WriteWAV renders r and writes it to path as a 16-bit mono WAV file,
// creating parent directories as needed.
func WriteWAV(path string, r Recipe, rate beep.SampleRate) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, r.Streamer(rate), format); err != nil {
		return errors.Wrapf(err, "encoding %s", r.Name)
	}
	glog.V(1).Infof("sfx: wrote %s (%v at %d Hz)", path, r.Duration, rate)
	return f.Close()
}
