package game

import "path/filepath"

// ResourceConfig represents the top-level resource configuration loaded from YAML.
// It defines the structure of assets/config/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    sounds: [...]
//	    music: [...]
//
// All visuals are generated vector outlines, so the configuration only
// describes audio assets.
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup represents a collection of related resources that can be
// requested together (e.g., everything the gameplay scene needs).
type ResourceGroup struct {
	Sounds []SoundResource `yaml:"sounds"` // One-shot sound effects in this group
	Music  []MusicResource `yaml:"music"`  // Looping music tracks in this group
}

// SoundResource represents a single one-shot sound effect definition.
//
// Fields:
//   - ID: Unique identifier for the sound (e.g., "SOUND_FIRE")
//   - Path: Relative path from base_path, extension optional (defaults to .wav)
//
// Example:
//   - id: SOUND_FIRE
//     path: audio/fire
type SoundResource struct {
	ID   string `yaml:"id"`   // Resource ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path
}

// MusicResource represents a looping music track definition.
// Music players are wrapped in an infinite loop when created.
type MusicResource struct {
	ID   string `yaml:"id"`   // Resource ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path
}

// buildFullPath constructs the full file path for a resource, combining the
// base path with the resource's relative path and defaulting the extension
// to .wav when none is given.
func buildFullPath(basePath, relativePath string) string {
	full := relativePath
	if basePath != "" {
		if len(relativePath) > 0 && relativePath[0] == '/' {
			full = basePath + relativePath
		} else {
			full = basePath + "/" + relativePath
		}
	}
	if filepath.Ext(full) == "" {
		full += ".wav"
	}
	return full
}
