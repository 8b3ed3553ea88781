package sfx

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"badc0de.net/pkg/greeny-assets/ttesting"
)

func TestRecipesRender(t *testing.T) {
	for _, r := range Recipes() {
		t.Run(r.Name, func(t *testing.T) {
			buf := r.Render(DefaultSampleRate)
			ttesting.AssertEqualInt(t, "samples", len(buf), DefaultSampleRate.N(r.Duration))

			silent := true
			for i, s := range buf {
				if s < -1 || s > 1 || math.IsNaN(s) {
					t.Fatalf("sample %d out of range: %f", i, s)
				}
				if s != 0 {
					silent = false
				}
			}
			if silent {
				t.Errorf("rendered silence")
			}
		})
	}
}

func TestHoverNormalized(t *testing.T) {
	r, ok := Lookup("hover")
	if !ok {
		t.Fatal("no hover recipe")
	}
	buf := r.Render(DefaultSampleRate)
	ttesting.AssertEqualInt(t, "samples", len(buf), 6615)

	peak := 0.0
	for _, s := range buf {
		peak = math.Max(peak, math.Abs(s))
	}
	if math.Abs(peak-0.8) > 1e-9 {
		t.Errorf("peak = %f; want 0.8", peak)
	}
}

func TestRenderDeterministic(t *testing.T) {
	r, _ := Lookup("hit_impact")
	a := r.Render(DefaultSampleRate)
	b := r.Render(DefaultSampleRate)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between renders: %f != %f", i, a[i], b[i])
		}
	}
}

func TestStreamer(t *testing.T) {
	r, _ := Lookup("tongue_flick")
	want := r.Render(DefaultSampleRate)
	s := r.Streamer(DefaultSampleRate)

	var got []float64
	samples := make([][2]float64, 512)
	for {
		n, ok := s.Stream(samples)
		if !ok {
			break
		}
		for _, sm := range samples[:n] {
			if sm[0] != sm[1] {
				t.Fatalf("channels differ: %v", sm)
			}
			got = append(got, sm[0])
		}
	}
	ttesting.AssertEqualInt(t, "streamed samples", len(got), len(want))
	if s.Err() != nil {
		t.Errorf("Err() = %v", s.Err())
	}
}

func TestWriteWAV(t *testing.T) {
	r, _ := Lookup("button_click")
	path := filepath.Join(t.TempDir(), "audio", "button_click.wav")
	if err := WriteWAV(path, r, DefaultSampleRate); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	s, format, err := wav.Decode(f)
	if err != nil {
		t.Fatalf("decoding written file: %v", err)
	}
	defer s.Close()

	ttesting.AssertEqualInt(t, "channels", format.NumChannels, 1)
	ttesting.AssertEqualInt(t, "precision", format.Precision, 2)
	ttesting.AssertEqualInt(t, "sample rate", int(format.SampleRate), int(DefaultSampleRate))
	ttesting.AssertEqualInt(t, "length", s.Len(), beep.SampleRate(44100).N(r.Duration))
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("kazoo"); ok {
		t.Errorf("found a recipe for kazoo")
	}
}
