// Package assets embeds the sound effects and music tracks.
package assets

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed sounds/*.wav music/*.wav
var assetsFS embed.FS

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// List returns the embedded files under dir, assets-relative.
func List(dir string) ([]string, error) {
	entries, err := fs.ReadDir(assetsFS, cleanAssetPath(dir))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, cleanAssetPath(dir)+"/"+e.Name())
		}
	}
	return out, nil
}

// SoundPath is the asset path of a cue's sound effect.
func SoundPath(cue string) string {
	return "sounds/" + cue + ".wav"
}

// MusicPath is the asset path of a music track.
func MusicPath(track string) string {
	return "music/" + track + ".wav"
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
