package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type builtin struct {
	info  SceneInfo
	build func() (*Scene, error)
}

var builtins = map[string]builtin{
	"default": {
		SceneInfo{"default", "Default", "Colored spheres, two mirrors and a glass sphere"},
		NewDefaultScene,
	},
	"mirrors": {
		SceneInfo{"mirrors", "Mirror Ring", "Chained reflections between four mirrors"},
		NewMirrorScene,
	},
	"glass": {
		SceneInfo{"glass", "Glass", "Transparent spheres with different index ratios"},
		NewGlassScene,
	},
}

// ListBuiltinScenes returns the built-in scenes sorted by ID
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		scenes = append(scenes, b.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// NewBuiltinScene builds the named scene
func NewBuiltinScene(name string) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	s, err := b.build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %s: %w", name, err)
	}
	return s, nil
}
