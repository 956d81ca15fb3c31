// Package assets synthesises the game's sound effects.
package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	cfg "github.com/automoto/gradius/config"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// oscillator generates one waveform segment, optionally sweeping its
// frequency linearly from freq to endFreq.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     cfg.Waveform
	rate     beep.SampleRate
	noise    *rand.Rand
}

func newOscillator(n cfg.SynthNote, rate beep.SampleRate, seed uint64) *oscillator {
	end := n.EndFreq
	if end == 0 {
		end = n.Freq
	}
	return &oscillator{
		freq:     n.Freq,
		endFreq:  end,
		duration: rate.N(n.Duration),
		wave:     n.Wave,
		rate:     rate,
		noise:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case cfg.WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case cfg.WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case cfg.WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case cfg.WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, n cfg.SynthNote, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(n.Attack),
		releaseSamples: rate.N(n.Release),
		totalSamples:   rate.N(n.Duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attackSamples > 0 && e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; beep's Volume effect is logarithmic.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Streamer builds the beep streamer for a recipe.
func Streamer(recipe []cfg.SynthNote, rate beep.SampleRate, seed uint64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(recipe))
	for i, n := range recipe {
		osc := newOscillator(n, rate, seed+uint64(i))
		parts = append(parts, newVolume(newEnvelope(osc, n, rate), n.Gain))
	}
	return beep.Seq(parts...)
}

// Render drains a streamer into signed 16-bit little-endian stereo PCM,
// the format ebiten's audio players consume.
func Render(s beep.Streamer) []byte {
	buf := make([][2]float64, 512)
	var out []byte
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = math.Max(-1, math.Min(1, v))
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok {
			return out
		}
	}
}

// Duration returns the total length of a recipe.
func Duration(recipe []cfg.SynthNote) time.Duration {
	var d time.Duration
	for _, n := range recipe {
		d += n.Duration
	}
	return d
}

// SoundBank caches rendered PCM per sound.
type SoundBank struct {
	rate  beep.SampleRate
	cache map[cfg.SoundID][]byte
}

// NewSoundBank returns an empty bank rendering at sampleRate.
func NewSoundBank(sampleRate int) *SoundBank {
	return &SoundBank{
		rate:  beep.SampleRate(sampleRate),
		cache: make(map[cfg.SoundID][]byte),
	}
}

// PCM returns the rendered bytes for id, synthesising them on first use.
func (b *SoundBank) PCM(id cfg.SoundID) ([]byte, error) {
	if pcm, ok := b.cache[id]; ok {
		return pcm, nil
	}
	recipe, ok := cfg.Sound.Recipes[id]
	if !ok {
		return nil, fmt.Errorf("no recipe for sound %d", id)
	}
	pcm := Render(Streamer(recipe, b.rate, uint64(id)))
	b.cache[id] = pcm
	return pcm, nil
}

// Preload renders every configured sound.
func (b *SoundBank) Preload() error {
	for id := range cfg.Sound.Recipes {
		if _, err := b.PCM(id); err != nil {
			return err
		}
	}
	return nil
}
