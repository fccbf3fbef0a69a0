package game

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"gopkg.in/yaml.v3"

	"github.com/decker502/asteroids/internal/synth"
	"github.com/decker502/asteroids/pkg/embedded"
)

// SoundState describes where a requested sound asset is in its lifecycle.
type SoundState int

const (
	// SoundLoading means the asset is still being read and decoded.
	SoundLoading SoundState = iota
	// SoundReady means decoded PCM data is available.
	SoundReady
	// SoundFailed means the asset could not be resolved; callers should
	// substitute the placeholder instead of treating this as an error.
	SoundFailed
)

// SoundHandle is returned immediately by RequestSound. The handle resolves
// on a later frame once the background decode finishes; callers poll Ready
// and must tolerate a handle that has not resolved yet.
//
// Handles are only mutated by ResourceManager.Update on the main thread,
// so reading them from game code needs no synchronization.
type SoundHandle struct {
	id    string
	state SoundState
	pcm   []byte
}

// ID returns the resource ID this handle was requested for.
func (h *SoundHandle) ID() string { return h.id }

// Ready reports whether decoded PCM data is available.
func (h *SoundHandle) Ready() bool { return h.state == SoundReady }

// Failed reports whether the asset could not be resolved.
func (h *SoundHandle) Failed() bool { return h.state == SoundFailed }

// loadResult carries a finished background decode back to the main thread.
type loadResult struct {
	id  string
	pcm []byte
	err error
}

// ResourceManager is responsible for centralized management of audio assets.
//
// Loading is asynchronous relative to the simulation loop: RequestSound
// returns a handle immediately and a background goroutine reads the embedded
// file and decodes it to PCM. Update, called once per frame on the main
// thread, drains finished decodes and resolves handles. There is no blocking
// wait anywhere in the loop, and a failed decode resolves the handle as
// Failed so the audio layer can substitute a synthesized placeholder.
//
// Apart from the results channel handoff the manager is not thread-safe;
// all public methods must be called from the main thread.
type ResourceManager struct {
	audioContext *audio.Context

	config      *ResourceConfig
	resourceMap map[string]string // Resource ID -> file path mapping

	handles map[string]*SoundHandle
	results chan loadResult

	placeholder []byte // decoded placeholder PCM, substituted for failed assets
}

// NewResourceManager creates and initializes a new ResourceManager instance.
// The audioContext is used to construct players; it may be nil in tests,
// in which case player constructors return nil.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	rm := &ResourceManager{
		audioContext: audioContext,
		resourceMap:  make(map[string]string),
		handles:      make(map[string]*SoundHandle),
		results:      make(chan loadResult, 16),
	}

	// The placeholder is rendered and decoded up front so a failed asset
	// can always be voiced without touching the filesystem again.
	pcm, err := decodeAudio("placeholder.wav", synth.WAV(synth.Placeholder(), synth.SampleRate))
	if err != nil {
		log.Printf("[ResourceManager] Failed to render placeholder sound: %v", err)
	} else {
		rm.placeholder = pcm
	}

	return rm
}

// LoadResourceConfig loads the resource configuration from an embedded YAML
// file. It should be called once during startup, before requesting assets.
//
// Parameters:
//   - configPath: Embedded path of the configuration (e.g., "assets/config/resources.yaml")
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := embedded.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}
	return rm.ParseResourceConfig(data)
}

// ParseResourceConfig parses YAML configuration data and rebuilds the
// resource ID -> path mapping.
func (rm *ResourceManager) ParseResourceConfig(data []byte) error {
	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config: %w", err)
	}

	rm.config = &config
	rm.buildResourceMap()
	return nil
}

// buildResourceMap constructs the mapping from resource IDs to full file
// paths, combining the base path with each resource's relative path.
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	if rm.config == nil {
		return
	}

	for _, group := range rm.config.Groups {
		for _, sound := range group.Sounds {
			rm.resourceMap[sound.ID] = buildFullPath(rm.config.BasePath, sound.Path)
		}
		for _, track := range group.Music {
			rm.resourceMap[track.ID] = buildFullPath(rm.config.BasePath, track.Path)
		}
	}
}

// Manifest returns a copy of the resource ID -> embedded path mapping from
// the loaded configuration. Intended for audit tooling.
func (rm *ResourceManager) Manifest() map[string]string {
	m := make(map[string]string, len(rm.resourceMap))
	for id, path := range rm.resourceMap {
		m[id] = path
	}
	return m
}

// RequestSound requests an audio asset by resource ID and returns its handle
// immediately. Requesting the same ID again returns the existing handle, so
// repeated requests across scene restarts are harmless.
//
// An ID missing from the configuration resolves as Failed right away.
func (rm *ResourceManager) RequestSound(id string) *SoundHandle {
	if h, exists := rm.handles[id]; exists {
		return h
	}

	h := &SoundHandle{id: id, state: SoundLoading}
	rm.handles[id] = h

	path, exists := rm.resourceMap[id]
	if !exists {
		log.Printf("[ResourceManager] Unknown sound resource ID: %s", id)
		h.state = SoundFailed
		return h
	}

	go func() {
		data, err := embedded.ReadFile(path)
		if err != nil {
			rm.results <- loadResult{id: id, err: err}
			return
		}
		pcm, err := decodeAudio(path, data)
		rm.results <- loadResult{id: id, pcm: pcm, err: err}
	}()

	return h
}

// RequestGroup requests every asset in the named resource group.
// Returns an error only if the group itself is unknown; individual asset
// failures resolve through their handles.
func (rm *ResourceManager) RequestGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("resource group not found: %s", groupName)
	}

	for _, sound := range group.Sounds {
		rm.RequestSound(sound.ID)
	}
	for _, track := range group.Music {
		rm.RequestSound(track.ID)
	}
	return nil
}

// Update drains finished background decodes and resolves their handles.
// Must be called once per frame on the main thread.
func (rm *ResourceManager) Update() {
	for {
		select {
		case res := <-rm.results:
			h, exists := rm.handles[res.id]
			if !exists {
				// Stale resolution for a handle that was cleared; ignore.
				continue
			}
			if res.err != nil {
				log.Printf("[ResourceManager] Failed to load sound %s: %v (using placeholder)", res.id, res.err)
				h.state = SoundFailed
			} else {
				h.pcm = res.pcm
				h.state = SoundReady
			}
		default:
			return
		}
	}
}

// Sound returns the handle for a resource ID, or nil if it was never
// requested.
func (rm *ResourceManager) Sound(id string) *SoundHandle {
	return rm.handles[id]
}

// NewSoundPlayer creates a one-shot player for a resolved sound.
//
// Returns nil while the handle is still loading (the caller simply skips
// the cue this frame) and a placeholder-beep player when the asset failed.
// Each call creates a fresh player, so overlapping plays of the same effect
// mix naturally.
func (rm *ResourceManager) NewSoundPlayer(id string) *audio.Player {
	if rm.audioContext == nil {
		return nil
	}

	h, exists := rm.handles[id]
	if !exists {
		return nil
	}

	switch h.state {
	case SoundReady:
		return rm.audioContext.NewPlayerFromBytes(h.pcm)
	case SoundFailed:
		if len(rm.placeholder) == 0 {
			return nil
		}
		return rm.audioContext.NewPlayerFromBytes(rm.placeholder)
	default:
		return nil
	}
}

// NewMusicPlayer creates a player for a resolved music track, wrapped in an
// infinite loop for background playback.
//
// Returns (nil, nil) while the track is still loading so the caller can try
// again next frame. A failed track returns an error; the placeholder beep
// would be worse than silence for music.
func (rm *ResourceManager) NewMusicPlayer(id string) (*audio.Player, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context")
	}

	h, exists := rm.handles[id]
	if !exists {
		return nil, fmt.Errorf("music resource %s was never requested", id)
	}

	switch h.state {
	case SoundReady:
		loop := audio.NewInfiniteLoop(bytes.NewReader(h.pcm), int64(len(h.pcm)))
		player, err := rm.audioContext.NewPlayer(loop)
		if err != nil {
			return nil, fmt.Errorf("failed to create music player for %s: %w", id, err)
		}
		return player, nil
	case SoundFailed:
		return nil, fmt.Errorf("music resource %s failed to resolve", id)
	default:
		return nil, nil
	}
}

// decodeAudio decodes an audio file to raw PCM bytes. The format is chosen
// by file extension. Ebitengine's decoders normalize everything to 16-bit
// little-endian stereo, so the result can be handed to NewPlayerFromBytes.
func decodeAudio(path string, data []byte) ([]byte, error) {
	reader := bytes.NewReader(data)
	ext := strings.ToLower(filepath.Ext(path))

	var stream io.Reader
	switch ext {
	case ".wav":
		decoded, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		stream = decoded
	case ".ogg":
		decoded, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		stream = decoded
	case ".mp3":
		decoded, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		stream = decoded
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .ogg, .mp3)", ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio %s: %w", path, err)
	}
	return pcm, nil
}
