package sfx

import (
	"math"
	"math/rand"
	"time"
)

func sine(freq, t float64) float64 {
	return math.Sin(2 * math.Pi * freq * t)
}

// sweep returns the frequency at t of a linear sweep from `from` to `to`
// over d seconds.
func sweep(from, to, d, t float64) float64 {
	return from + (to-from)*t/d
}

func noise(rng *rand.Rand, amount float64) float64 {
	return (rng.Float64() - 0.5) * amount
}

// arpeggio plays notes back to back, each with an exponential decay.
func arpeggio(notes []float64, d, decay, gain float64) func(float64, *rand.Rand) float64 {
	noteDuration := d / float64(len(notes))
	return func(t float64, _ *rand.Rand) float64 {
		idx := int(t / noteDuration)
		if idx >= len(notes) {
			return 0
		}
		nt := t - float64(idx)*noteDuration
		return sine(notes[idx], nt) * math.Exp(-nt*decay) * gain
	}
}

var recipes = []Recipe{
	{
		Name:      "hover",
		Duration:  150 * time.Millisecond,
		Normalize: 0.8,
		Wave: func(t float64, _ *rand.Rand) float64 {
			var s float64
			if t < 0.08 {
				s += sine(800, t) * 0.15 * math.Exp(-t*12.5)
			}
			if t >= 0.03 && t < 0.08 {
				s += sine(1200, t) * 0.08 * math.Exp(-t*20)
			}
			return s + math.Sin(t*math.Pi*12000)*0.02*math.Exp(-t*20)
		},
	},
	{
		Name:     "button_click",
		Duration: 150 * time.Millisecond,
		Wave: func(t float64, _ *rand.Rand) float64 {
			return sine(sweep(800, 1200, 0.15, t), t) * math.Exp(-t*10) * 0.3
		},
	},
	{
		Name:     "game_start",
		Duration: 600 * time.Millisecond,
		Wave:     arpeggio([]float64{523.25, 659.25, 783.99, 1046.50}, 0.6, 5, 0.4),
	},
	{
		Name:     "snake_move",
		Duration: 80 * time.Millisecond,
		Seed:     1,
		Wave: func(t float64, rng *rand.Rand) float64 {
			return (sine(sweep(200, 150, 0.08, t), t) + noise(rng, 0.1)) * math.Exp(-t*15) * 0.1
		},
	},
	{
		Name:     "eat_food",
		Duration: 300 * time.Millisecond,
		Wave: func(t float64, _ *rand.Rand) float64 {
			crunch := sine(600, t)*math.Exp(-t*8) + sine(400, t)*math.Exp(-t*6) + sine(800, t)*math.Exp(-t*10)
			return crunch * 0.2
		},
	},
	{
		Name:     "tongue_flick",
		Duration: 50 * time.Millisecond,
		Wave: func(t float64, _ *rand.Rand) float64 {
			return sine(sweep(1200, 800, 0.05, t), t) * math.Exp(-t*30) * 0.2
		},
	},
	{
		Name:     "collision",
		Duration: 200 * time.Millisecond,
		Seed:     2,
		Wave: func(t float64, rng *rand.Rand) float64 {
			return (sine(sweep(200, 50, 0.2, t), t) + noise(rng, 0.3)) * math.Exp(-t*8) * 0.4
		},
	},
	{
		Name:     "hit_impact",
		Duration: 300 * time.Millisecond,
		Seed:     3,
		Wave: func(t float64, rng *rand.Rand) float64 {
			return (sine(sweep(150, 50, 0.3, t), t) + noise(rng, 0.5)) * math.Exp(-t*5) * 0.6
		},
	},
	{
		Name:     "game_over",
		Duration: 1200 * time.Millisecond,
		Wave:     arpeggio([]float64{523.25, 466.16, 415.30, 369.99}, 1.2, 3, 0.3),
	},
	{
		Name:     "background_music",
		Duration: 8 * time.Second,
		Wave: func(t float64, _ *rand.Rand) float64 {
			// One second per note: C4 E4 G4 E4 D4 C4 B3 C4.
			melody := [...]float64{261.63, 329.63, 392.00, 329.63, 293.66, 261.63, 246.94, 261.63}
			idx := int(t)
			if idx >= len(melody) {
				return 0
			}
			nt := t - float64(idx)
			return sine(melody[idx], nt) * math.Sin(math.Pi*nt) * 0.1
		},
	},
}

// Recipes returns all known sound effects.
func Recipes() []Recipe {
	return append([]Recipe(nil), recipes...)
}

// Lookup returns the recipe with the passed name.
func Lookup(name string) (Recipe, bool) {
	for _, r := range recipes {
		if r.Name == name {
			return r, true
		}
	}
	return Recipe{}, false
}
