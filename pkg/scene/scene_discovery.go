package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a scene name matches no built-in scene
// and no scene file
var ErrUnknownScene = errors.New("unknown scene")

// Constructor builds a scene at the requested size; zero means default
type Constructor func(width, height int) (*Scene, error)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to scene file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtinGroup = "Built-in Scenes"

type builtinScene struct {
	info SceneInfo
	new  Constructor
}

var builtins = []builtinScene{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Three spheres over a floor with directional and point lights"}, NewDefaultScene},
	{SceneInfo{ID: "sphere", Name: "Unlit Sphere", Description: "Single green sphere with no lights"}, NewSphereScene},
	{SceneInfo{ID: "shadows", Name: "Shadows", Description: "Sphere casting a shadow under a point light"}, NewShadowScene},
	{SceneInfo{ID: "planes", Name: "Planes", Description: "Corner of three walls with a small sphere"}, NewPlanesScene},
}

// ScenesDirs are searched in order for *.json scene files
var ScenesDirs = []string{"scenes", "../scenes"}

// Names returns the IDs of the built-in scenes in registration order
func Names() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.info.ID
	}
	return names
}

// Create builds a scene by name. The name may be a built-in scene ID, the
// base name of a file in a scenes directory, or a path to a .json file.
func Create(name string, width, height int) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == name {
			return b.new(width, height)
		}
	}

	if strings.HasSuffix(name, ".json") {
		return loadSized(name, width, height)
	}

	if name != "" {
		if dir := findScenesDir(); dir != "" {
			path := filepath.Join(dir, name+".json")
			if _, err := os.Stat(path); err == nil {
				return loadSized(path, width, height)
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// loadSized loads a scene file, overriding its image size when requested
func loadSized(path string, width, height int) (*Scene, error) {
	desc, err := readDescription(path)
	if err != nil {
		return nil, err
	}
	if width > 0 {
		desc.Width = width
	}
	if height > 0 {
		desc.Height = height
	}
	s, err := desc.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func readDescription(path string) (FileDescription, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileDescription{}, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := decodeDescription(file)
	if err != nil {
		return desc, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

func findScenesDir() string {
	for _, dir := range ScenesDirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

// ListFileScenes scans the scenes directory and returns discovered scene files
func ListFileScenes() ([]SceneInfo, error) {
	scenesDir := findScenesDir()
	if scenesDir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		scenes = append(scenes, fileSceneInfo(filePath))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// fileSceneInfo reads display metadata from a scene file, falling back to
// values derived from the file name when the file cannot be read
func fileSceneInfo(filePath string) SceneInfo {
	id := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       id,
		Name:     titleCase(id),
		Group:    "Scene Files",
		Type:     "file",
		FilePath: filePath,
	}

	desc, err := readDescription(filePath)
	if err != nil {
		return info
	}
	if desc.Name != "" {
		info.Name = desc.Name
	}
	if desc.Group != "" {
		info.Group = desc.Group
	}
	info.Description = desc.Description
	return info
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	allScenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.Group = builtinGroup
		info.Type = "builtin"
		allScenes = append(allScenes, info)
	}

	fileScenes, err := ListFileScenes()
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}
	allScenes = append(allScenes, fileScenes...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtinGroup,
		Scenes: groupMap[builtinGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
