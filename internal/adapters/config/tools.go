package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bnema/contentkit-cli/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

const currentToolsVersion = 1

//go:embed tools.toml
var builtinTools []byte

type toolsFile struct {
	Version int          `toml:"version"`
	Tools   []toolSchema `toml:"tools" validate:"dive"`
}

type toolSchema struct {
	Slug            string   `toml:"slug" validate:"required,excludesall=/?#"`
	Name            string   `toml:"name" validate:"required"`
	Category        string   `toml:"category"`
	Shape           string   `toml:"shape" validate:"oneof=plain_text text_array blob"`
	MIMEType        string   `toml:"mime_type,omitempty"`
	Attempts        int      `toml:"attempts" validate:"min=1,max=5"`
	MonitoredFields []string `toml:"monitored_fields,omitempty"`
	RequiredFields  []string `toml:"required_fields,omitempty"`
	UploadField     string   `toml:"upload_field,omitempty"`
	DefaultFilename string   `toml:"default_filename,omitempty"`
}

// Registry holds the tool profiles available to `ck generate`, keyed by slug.
type Registry struct {
	profiles map[string]domain.ToolProfile
}

// LoadRegistry parses the built-in profiles and merges the user file at path over them by slug.
// A missing user file is not an error.
func LoadRegistry(path string) (*Registry, error) {
	registry := &Registry{profiles: map[string]domain.ToolProfile{}}
	if err := registry.merge(builtinTools, "built-in tools"); err != nil {
		return nil, err
	}

	if strings.TrimSpace(path) == "" {
		return registry, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return registry, nil
		}
		return nil, fmt.Errorf("read tools file: %w", err)
	}
	if err := registry.merge(data, path); err != nil {
		return nil, err
	}

	return registry, nil
}

func (r *Registry) Get(slug string) (domain.ToolProfile, error) {
	profile, ok := r.profiles[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return domain.ToolProfile{}, fmt.Errorf("%w: %s", domain.ErrToolNotFound, slug)
	}

	return profile, nil
}

// List returns every profile ordered by category then slug.
func (r *Registry) List() []domain.ToolProfile {
	profiles := make([]domain.ToolProfile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Category != profiles[j].Category {
			return profiles[i].Category < profiles[j].Category
		}
		return profiles[i].Slug < profiles[j].Slug
	})

	return profiles
}

func (r *Registry) merge(data []byte, source string) error {
	var file toolsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("decode %s: %w", source, err)
	}
	if file.Version > currentToolsVersion {
		return fmt.Errorf("unsupported tools schema version %d in %s (current %d)", file.Version, source, currentToolsVersion)
	}
	if err := Validate(file); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	for _, entry := range file.Tools {
		profile := entry.toProfile()
		if err := profile.Validate(); err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		r.profiles[profile.Slug] = profile
	}

	return nil
}

func (s toolSchema) toProfile() domain.ToolProfile {
	return domain.ToolProfile{
		Slug:            strings.ToLower(strings.TrimSpace(s.Slug)),
		Name:            strings.TrimSpace(s.Name),
		Category:        strings.TrimSpace(s.Category),
		Shape:           domain.Shape(s.Shape),
		MIMEType:        strings.TrimSpace(s.MIMEType),
		Attempts:        s.Attempts,
		MonitoredFields: s.MonitoredFields,
		RequiredFields:  s.RequiredFields,
		UploadField:     strings.TrimSpace(s.UploadField),
		DefaultFilename: strings.TrimSpace(s.DefaultFilename),
	}
}
