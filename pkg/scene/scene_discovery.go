package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// ErrUnknownScene is returned by CreateScene for IDs that name no scene
var ErrUnknownScene = errors.New("unknown scene")

// DefaultRandomSeed is the layout seed used for the "random" scene ID
const DefaultRandomSeed int64 = 42

const (
	builtInGroup  = "Built-in Scenes"
	fileGroup     = "Scene Files"
	fileScenePref = "file:"
	sceneFileExt  = ".txt"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the scene file (file type only)
	Variant     string `json:"variant"`     // Variant name (optional)
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

// builtInScenes lists the scenes constructed in code
var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		Name:        "Default Scene",
		DisplayName: "Default Scene",
		Description: "Diffuse sphere between a mirror and a gold sphere",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "random",
		Name:        "Random Spheres",
		DisplayName: "Random Spheres",
		Description: "Field of random spheres with motion blur and depth of field",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "sphere-grid",
		Name:        "Sphere Grid",
		DisplayName: "Sphere Grid",
		Description: "10x10 grid of rainbow-colored metallic spheres",
		Group:       builtInGroup,
		Type:        "builtin",
	},
}

// FindScenesDir returns the first scenes directory found relative to the
// working directory, or "" when there is none
func FindScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListFileScenes returns the scene files in dir, sorted by display name
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*"+sceneFileExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from scene file header comments:
//
//	# Scene: Hollow Glass
//	# Variant: Thin Shell
//	# Description: Glass shell around a diffuse core
//	# Group: Glass
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          fileScenePref + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       fileGroup,
		Type:        "file",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Metadata lives in the leading comment block
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		key, value, found := strings.Cut(content, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "Scene":
			sceneInfo.Name = value
		case "Variant":
			sceneInfo.Variant = value
		case "Description":
			sceneInfo.Description = value
		case "Group":
			sceneInfo.Group = value
		}
	}

	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns built-in and file scenes from dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(append([]SceneInfo{}, builtInScenes...), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: groupMap[builtInGroup]})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// ListScenes returns the IDs of all scenes CreateScene accepts with dir as the scenes directory
func ListScenes(dir string) ([]string, error) {
	response, err := ListAllScenes(dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, group := range response.Groups {
		for _, s := range group.Scenes {
			ids = append(ids, s.ID)
		}
	}
	return ids, nil
}

// CreateScene builds the scene named by id. File scenes ("file:<name>") are
// looked up as <name>.txt inside dir. The returned scene has been validated.
func CreateScene(id, dir string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	var s *Scene

	switch {
	case id == "default":
		s = NewDefaultScene(cameraOverrides...)
	case id == "random":
		s = NewRandomScene(DefaultRandomSeed, cameraOverrides...)
	case id == "sphere-grid":
		s = NewSphereGridScene(cameraOverrides...)
	case strings.HasPrefix(id, fileScenePref):
		path, err := sceneFilePath(dir, strings.TrimPrefix(id, fileScenePref))
		if err != nil {
			return nil, err
		}
		s, err = NewFileScene(path, material.DefaultLibrary(), cameraOverrides...)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", id, err)
	}
	return s, nil
}

// sceneFilePath resolves a file scene name inside dir, refusing anything that
// could escape it
func sceneFilePath(dir, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("%w: no scenes directory for %q", ErrUnknownScene, name)
	}
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: invalid scene file name %q", ErrUnknownScene, name)
	}
	return filepath.Join(dir, name+sceneFileExt), nil
}

// titleCase converts a filename-style string to title case
// e.g., "hollow-glass" -> "Hollow Glass"
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
