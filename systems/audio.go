package systems

import (
	"sync"

	"github.com/automoto/gradius/assets"
	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog/log"
	"github.com/yohamta/donburi/ecs"
)

// Global audio state - created once and shared across all scenes
var (
	globalAudioContext *audio.Context
	globalSoundBank    *assets.SoundBank
	globalSFXVolume    float64 = cfg.Audio.DefaultSFXVol
	audioInitOnce      sync.Once
)

// initGlobalAudio initializes the global audio context (called once)
func initGlobalAudio() {
	audioInitOnce.Do(func() {
		globalAudioContext = audio.NewContext(cfg.Audio.SampleRate)
		globalSoundBank = assets.NewSoundBank(cfg.Audio.SampleRate)
	})
}

// PreloadAllSFX synthesises all sound effects at startup to avoid lag on
// first play.
func PreloadAllSFX() {
	initGlobalAudio()
	if err := globalSoundBank.Preload(); err != nil {
		log.Warn().Err(err).Str("component", "audio").Msg("could not preload sounds")
	}
}

// UpdateAudio plays the sound effects queued this frame.
func UpdateAudio(e *ecs.ECS) {
	initGlobalAudio()

	entry, ok := components.Audio.First(e.World)
	if !ok {
		return
	}
	audioData := components.Audio.Get(entry)

	played := make(map[cfg.SoundID]int, len(audioData.PendingSFX))
	for _, soundID := range audioData.PendingSFX {
		if played[soundID] >= cfg.Audio.MaxVoices {
			continue
		}
		played[soundID]++
		playSFX(soundID)
	}
	audioData.PendingSFX = audioData.PendingSFX[:0]
}

func playSFX(soundID cfg.SoundID) {
	if globalSFXVolume <= 0 {
		return
	}

	pcm, err := globalSoundBank.PCM(soundID)
	if err != nil {
		return
	}

	volume := globalSFXVolume
	if mult, ok := cfg.Sound.VolumeMultipliers[soundID]; ok {
		volume *= mult
	}

	player := globalAudioContext.NewPlayerFromBytes(pcm)
	player.SetVolume(min(volume, 1))
	player.Play()
}

// PlaySFX queues a sound effect to be played
func PlaySFX(e *ecs.ECS, sound cfg.SoundID) {
	audioData := GetOrCreateAudio(e)
	audioData.PendingSFX = append(audioData.PendingSFX, sound)
}

// SetSFXVolume changes the SFX volume (0.0 - 1.0)
func SetSFXVolume(e *ecs.ECS, volume float64) {
	globalSFXVolume = volume
	if entry, ok := components.Audio.First(e.World); ok {
		components.Audio.Get(entry).SFXVolume = volume
	}
}

// GetSFXVolume returns the current SFX volume (0.0 - 1.0)
func GetSFXVolume() float64 {
	return globalSFXVolume
}

// GetOrCreateAudio returns the singleton Audio component for this ECS, creating it if needed
func GetOrCreateAudio(e *ecs.ECS) *components.AudioData {
	initGlobalAudio()

	entry, ok := components.Audio.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Audio))
		components.Audio.SetValue(entry, components.AudioData{
			Context:    globalAudioContext,
			SFXVolume:  globalSFXVolume,
			PendingSFX: make([]cfg.SoundID, 0, 8),
		})
	}
	return components.Audio.Get(entry)
}
