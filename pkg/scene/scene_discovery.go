package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/df07/go-stochastic-raytracer/pkg/loaders"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Name accepted by the -scene flag
	Name        string // Display name
	Description string // Optional description
	Type        string // "builtin" or "rt"
	FilePath    string // Path to the .rt file (rt type only)
}

// builtinScene pairs a scene constructor with its metadata
type builtinScene struct {
	info SceneInfo
	ctor func() *Scene
}

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Spheres of every material kind over a checkered ground", Type: "builtin"}, NewDefaultScene},
	{SceneInfo{ID: "cornell", Name: "Cornell Box", Description: "Cornell box with a mirror and a glass sphere under an area light", Type: "builtin"}, NewCornellScene},
	{SceneInfo{ID: "glass", Name: "Glass Spheres", Description: "Dielectric spheres with increasing index of refraction", Type: "builtin"}, NewGlassScene},
}

// NewBuiltinScene creates a built-in scene by id
func NewBuiltinScene(id string) (*Scene, bool) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.ctor(), true
		}
	}
	return nil, false
}

// ListRTScenes scans dir for .rt and .rt.gz files and returns their metadata.
// A missing directory yields an empty list.
func ListRTScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, entry := range entries {
		if entry.IsDir() || !loaders.IsRTPath(entry.Name()) {
			continue
		}
		info, err := ParseRTMetadata(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseRTMetadata extracts metadata from the header comments of an .rt file:
//
//	# Scene: Two Mirrors
//	# Description: Mirrors facing each other
func ParseRTMetadata(filePath string) (SceneInfo, error) {
	// Extract filename without extension for fallback values
	base := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(strings.TrimSuffix(base, ".gz"), ".rt")

	sceneInfo := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     "rt",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(base, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return sceneInfo, fmt.Errorf("failed to open gzip stream %s: %w", filePath, err)
		}
		defer gz.Close()
		reader = gz
	}

	// Read header comments to extract metadata
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if strings.HasPrefix(content, "Scene:") {
			sceneInfo.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		} else if strings.HasPrefix(content, "Description:") {
			sceneInfo.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		}
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the .rt scenes in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	all := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		all = append(all, b.info)
	}

	rtScenes, err := ListRTScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list .rt scenes: %w", err)
	}

	return append(all, rtScenes...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
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
