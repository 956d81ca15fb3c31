package config

import "time"

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	// Combat sounds
	SoundShoot
	SoundEnemyShoot
	SoundHit
	SoundExplosion
	SoundPlayerHit
	SoundPowerUp
	// Boss sounds
	SoundBossWarning
	SoundBossShoot
	SoundBossExplosion
	// Progress sounds
	SoundStageClear
	SoundGameOver
	// UI sounds
	SoundMenuNavigate
	SoundMenuSelect
)

// Waveform is an oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// SynthNote is one oscillator segment. Segments of a recipe play in sequence.
type SynthNote struct {
	Wave     Waveform
	Freq     float64 // start frequency in Hz
	EndFreq  float64 // 0 keeps Freq constant
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Gain     float64
}

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate    int
	DefaultSFXVol float64
	MaxVoices     int // simultaneous copies of one sound per frame
}

// SoundConfig maps sound IDs to synth recipes
type SoundConfig struct {
	Recipes           map[SoundID][]SynthNote
	VolumeMultipliers map[SoundID]float64
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate:    44100,
		DefaultSFXVol: 0.75,
		MaxVoices:     2,
	}

	ms := time.Millisecond
	Sound = SoundConfig{
		Recipes: map[SoundID][]SynthNote{
			SoundShoot: {
				{Wave: WaveSquare, Freq: 1200, EndFreq: 600, Duration: 60 * ms, Attack: 2 * ms, Release: 40 * ms, Gain: 0.25},
			},
			SoundEnemyShoot: {
				{Wave: WaveSaw, Freq: 400, EndFreq: 250, Duration: 80 * ms, Attack: 2 * ms, Release: 50 * ms, Gain: 0.2},
			},
			SoundHit: {
				{Wave: WaveNoise, Duration: 50 * ms, Attack: 1 * ms, Release: 40 * ms, Gain: 0.3},
			},
			SoundExplosion: {
				{Wave: WaveNoise, Duration: 250 * ms, Attack: 2 * ms, Release: 220 * ms, Gain: 0.5},
			},
			SoundPlayerHit: {
				{Wave: WaveSquare, Freq: 300, EndFreq: 80, Duration: 300 * ms, Attack: 2 * ms, Release: 200 * ms, Gain: 0.4},
			},
			SoundPowerUp: {
				{Wave: WaveSquare, Freq: 660, Duration: 70 * ms, Attack: 2 * ms, Release: 20 * ms, Gain: 0.25},
				{Wave: WaveSquare, Freq: 880, Duration: 70 * ms, Attack: 2 * ms, Release: 20 * ms, Gain: 0.25},
				{Wave: WaveSquare, Freq: 1320, Duration: 120 * ms, Attack: 2 * ms, Release: 80 * ms, Gain: 0.25},
			},
			SoundBossWarning: {
				{Wave: WaveSaw, Freq: 220, Duration: 250 * ms, Attack: 10 * ms, Release: 60 * ms, Gain: 0.35},
				{Wave: WaveSaw, Freq: 165, Duration: 250 * ms, Attack: 10 * ms, Release: 60 * ms, Gain: 0.35},
				{Wave: WaveSaw, Freq: 220, Duration: 250 * ms, Attack: 10 * ms, Release: 60 * ms, Gain: 0.35},
				{Wave: WaveSaw, Freq: 165, Duration: 400 * ms, Attack: 10 * ms, Release: 200 * ms, Gain: 0.35},
			},
			SoundBossShoot: {
				{Wave: WaveSquare, Freq: 200, EndFreq: 120, Duration: 120 * ms, Attack: 2 * ms, Release: 80 * ms, Gain: 0.25},
			},
			SoundBossExplosion: {
				{Wave: WaveNoise, Duration: 900 * ms, Attack: 5 * ms, Release: 800 * ms, Gain: 0.6},
			},
			SoundStageClear: {
				{Wave: WaveSquare, Freq: 523.25, Duration: 120 * ms, Attack: 2 * ms, Release: 30 * ms, Gain: 0.25},
				{Wave: WaveSquare, Freq: 659.25, Duration: 120 * ms, Attack: 2 * ms, Release: 30 * ms, Gain: 0.25},
				{Wave: WaveSquare, Freq: 783.99, Duration: 120 * ms, Attack: 2 * ms, Release: 30 * ms, Gain: 0.25},
				{Wave: WaveSquare, Freq: 1046.5, Duration: 400 * ms, Attack: 2 * ms, Release: 300 * ms, Gain: 0.25},
			},
			SoundGameOver: {
				{Wave: WaveSine, Freq: 392, Duration: 250 * ms, Attack: 5 * ms, Release: 60 * ms, Gain: 0.35},
				{Wave: WaveSine, Freq: 311.13, Duration: 250 * ms, Attack: 5 * ms, Release: 60 * ms, Gain: 0.35},
				{Wave: WaveSine, Freq: 261.63, Duration: 600 * ms, Attack: 5 * ms, Release: 500 * ms, Gain: 0.35},
			},
			SoundMenuNavigate: {
				{Wave: WaveSquare, Freq: 880, Duration: 30 * ms, Attack: 1 * ms, Release: 15 * ms, Gain: 0.15},
			},
			SoundMenuSelect: {
				{Wave: WaveSquare, Freq: 880, Duration: 40 * ms, Attack: 1 * ms, Release: 10 * ms, Gain: 0.2},
				{Wave: WaveSquare, Freq: 1760, Duration: 60 * ms, Attack: 1 * ms, Release: 40 * ms, Gain: 0.2},
			},
		},
		VolumeMultipliers: map[SoundID]float64{
			SoundShoot:     0.6,
			SoundExplosion: 1.2,
		},
	}
}
