// Package prefabs holds the tunable YAML documents and tengo scripts. Files
// under DiskDir override the embedded copies, so edits apply without a rebuild.
package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskDir is the working-directory relative folder checked before the
// embedded files.
const DiskDir = "prefabs"

//go:embed *.yaml scripts/*.tengo
var files embed.FS

// Load reads a prefab document such as "levels.yaml".
func Load(name string) ([]byte, error) {
	return read(prefabPath(name))
}

// LoadScript reads a tengo script by file name.
func LoadScript(name string) ([]byte, error) {
	return read(scriptPath(name))
}

// WatchDirs lists the on-disk folders a Watcher should observe.
func WatchDirs() []string {
	return []string{DiskDir, filepath.Join(DiskDir, "scripts")}
}

func read(clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return files.ReadFile(clean)
}

func prefabPath(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, DiskDir+"/"); ok {
		s = after
	}
	return s
}

func scriptPath(name string) string {
	s := prefabPath(name)
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return path.Join("scripts", s)
}
