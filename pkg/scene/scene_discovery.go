package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("scene: unknown scene")

const (
	builtInGroup  = "Built-in Scenes"
	fileGroup     = "Scene Files"
	TypeBuiltIn   = "builtin"
	TypeSceneFile = "file"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Unique identifier
	Name        string `json:"name"`               // Scene name
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Group       string `json:"group"`              // Grouping category
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the scene file (file type only)
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

type builtIn struct {
	info   SceneInfo
	create func() (*Scene, error)
}

// builtIns is ordered as the scenes are listed
var builtIns = []builtIn{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Diffuse sphere between two metal spheres"}, NewDefaultScene},
	{SceneInfo{ID: "two-spheres", Name: "Two Spheres", Description: "Diffuse sphere on a diffuse ground"}, NewTwoSpheresScene},
	{SceneInfo{ID: "boxes", Name: "Boxes", Description: "Diffuse and metal boxes around a sphere"}, NewBoxesScene},
	{SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "Grid of metal spheres in varying colors"}, NewSphereGridScene},
}

// Names returns the identifiers of the built-in scenes
func Names() []string {
	names := make([]string, len(builtIns))
	for i, b := range builtIns {
		names[i] = b.info.ID
	}
	return names
}

// Create builds the built-in scene with the given identifier
func Create(name string) (*Scene, error) {
	for _, b := range builtIns {
		if b.info.ID == name {
			return b.create()
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// BuiltInScenes returns metadata for every built-in scene
func BuiltInScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtIns))
	for i, b := range builtIns {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtInGroup
		info.Type = TypeBuiltIn
		scenes[i] = info
	}
	return scenes
}

// ListSceneFiles scans dir for JSON scene files. A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneFileMetadata(filePath)
		if err != nil {
			// Unreadable files are still listed under their filename
			sceneInfo.Description = err.Error()
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneFileMetadata reads the name, description and group fields of a scene file.
// Fields that are missing fall back to values derived from the filename.
func ParseSceneFileMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          "file:" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       fileGroup,
		Type:        TypeSceneFile,
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, nil
	}
	defer file.Close()

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.NewDecoder(file).Decode(&header); err != nil {
		return sceneInfo, fmt.Errorf("invalid scene file %s: %w", filename, err)
	}

	if name := strings.TrimSpace(header.Name); name != "" {
		sceneInfo.Name = name
		sceneInfo.DisplayName = name
	}
	sceneInfo.Description = strings.TrimSpace(header.Description)
	if group := strings.TrimSpace(header.Group); group != "" {
		sceneInfo.Group = group
	}

	return sceneInfo, nil
}

// ListAllScenes returns built-in scenes and the scene files found in dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListSceneFiles(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(BuiltInScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtInGroup,
		Scenes: groupMap[builtInGroup],
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
// e.g., "metal-spheres" -> "Metal Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
