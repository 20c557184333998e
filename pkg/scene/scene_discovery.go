package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by NewSceneByName
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type sceneEntry struct {
	description string
	build       func() *Scene
}

var registry = map[string]sceneEntry{
	"glass-box": {"Refracting square under a large white light", NewGlassBoxScene},
	"lens":      {"Plano-convex lens between two colored lights", NewLensScene},
	"mirrors":   {"Reflecting blocks and a mirror bar between colored lights", NewMirrorsScene},
	"emitter":   {"Single white disk light", NewEmitterScene},
	"fog":       {"Disk of scattering medium in front of a light", NewFogScene},
	"lens-pair": {"Biconvex lens formed by two overlapping disks", NewLensPairScene},
}

// DefaultSceneName is the scene rendered when none is requested
const DefaultSceneName = "glass-box"

// NewSceneByName builds the named built-in scene
func NewSceneByName(name string) (*Scene, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(ListScenes(), ", "))
	}
	return entry.build(), nil
}

// ListScenes returns the names of all built-in scenes, sorted
func ListScenes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListSceneInfos returns metadata for all built-in scenes, sorted by name
func ListSceneInfos() []SceneInfo {
	names := ListScenes()
	infos := make([]SceneInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: registry[name].description,
		})
	}
	return infos
}

// titleCase converts a scene name to title case
// e.g., "lens-pair" -> "Lens Pair"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
