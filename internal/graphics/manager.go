package graphics

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"raycaster/internal/logger"
)

// ManifestEntry describes one material texture.
type ManifestEntry struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	File    string `yaml:"file"`
	Pattern string `yaml:"pattern"`
}

// Manifest lists the textures of a material set.
type Manifest struct {
	Textures []ManifestEntry `yaml:"textures"`
}

// TextureManager loads material textures, falling back to procedural
// patterns when an image file cannot be used.
type TextureManager struct {
	size    int
	baseDir string
	log     *logrus.Entry
	cache   map[string]*Texture // keyed by resolved file path or pattern name
}

// NewTextureManager creates a manager producing size x size textures.
// Relative file paths in a manifest are resolved against baseDir.
func NewTextureManager(size int, baseDir string) *TextureManager {
	return &TextureManager{
		size:    size,
		baseDir: baseDir,
		log:     logger.For("graphics"),
		cache:   make(map[string]*Texture),
	}
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse texture manifest: %w", err)
	}
	return &m, nil
}

// LoadTable builds a table from the manifest at path. An empty path yields
// the built-in procedural set.
func (tm *TextureManager) LoadTable(path string) (*TextureTable, error) {
	if path == "" {
		return DefaultTextureTable(tm.size)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read texture manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	return tm.BuildTable(m)
}

// BuildTable resolves every manifest entry. Ids must cover 1..K exactly once.
func (tm *TextureManager) BuildTable(m *Manifest) (*TextureTable, error) {
	entries := append([]ManifestEntry(nil), m.Textures...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	textures := make([]*Texture, len(entries))
	for i, e := range entries {
		if e.ID != i+1 {
			return nil, fmt.Errorf("%w: manifest ids must run 1..%d, found %d at position %d",
				ErrMissingTexture, len(entries), e.ID, i+1)
		}
		tex, err := tm.GetTexture(e)
		if err != nil {
			return nil, fmt.Errorf("material %d (%s): %w", e.ID, e.Name, err)
		}
		textures[i] = tex
	}
	tm.log.WithFields(logrus.Fields{"count": len(textures), "size": tm.size}).Debug("texture table built")
	return NewTextureTable(textures)
}

// GetTexture returns the texture for one entry, loading it on first use.
func (tm *TextureManager) GetTexture(e ManifestEntry) (*Texture, error) {
	if e.File != "" {
		path := e.File
		if !filepath.IsAbs(path) && tm.baseDir != "" {
			path = filepath.Join(tm.baseDir, path)
		}
		if tex, ok := tm.cache[path]; ok {
			return tex, nil
		}
		tex, err := tm.loadImage(e.Name, path)
		if err == nil {
			tm.cache[path] = tex
			return tex, nil
		}
		tm.log.WithFields(logrus.Fields{"file": path, "error": err}).Warn("texture file unusable, using procedural fallback")
	}
	return tm.createPlaceholder(e)
}

func (tm *TextureManager) loadImage(name, path string) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return TextureFromImage(name, img, tm.size)
}

// createPlaceholder picks the entry's pattern, then a pattern matching its
// name, then a flat gray texture.
func (tm *TextureManager) createPlaceholder(e ManifestEntry) (*Texture, error) {
	pattern := e.Pattern
	if pattern == "" {
		pattern = e.Name
	}
	if !HasPattern(pattern) {
		tm.log.WithFields(logrus.Fields{"name": e.Name, "pattern": pattern}).Warn("unknown texture pattern, using placeholder")
	}
	if tex, ok := tm.cache[pattern]; ok {
		return tex, nil
	}
	tex, err := ProceduralTexture(pattern, tm.size)
	if err != nil {
		return nil, err
	}
	tm.cache[pattern] = tex
	return tex, nil
}
