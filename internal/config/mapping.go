package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadCategoryMapping reads an event category mapping from a YAML file.
//
// Two layouts are accepted. A flat map of event name to category:
//
//	LAB//HGB: lab
//	DX//C50: diagnosis
//
// or categories listing their event names under a top-level "categories" key:
//
//	categories:
//	  lab: [LAB//HGB, LAB//WBC]
//	  diagnosis: [DX//C50]
//
// An empty path returns a nil mapping, which means every event receives the
// default category.
func LoadCategoryMapping(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category mapping: %w", err)
	}

	mapping, err := ParseCategoryMapping(data)
	if err != nil {
		return nil, fmt.Errorf("category mapping %s: %w", path, err)
	}
	return mapping, nil
}

type groupedMapping struct {
	Categories map[string][]string `yaml:"categories"`
}

// ParseCategoryMapping decodes either mapping layout from YAML bytes.
func ParseCategoryMapping(data []byte) (map[string]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]string{}, nil
	}

	var probe map[string]yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	if _, grouped := probe["categories"]; grouped && len(probe) == 1 {
		return parseGrouped(data)
	}

	flat := make(map[string]string, len(probe))
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&flat); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid flat mapping: %w", err)
	}

	mapping := make(map[string]string, len(flat))
	for name, category := range flat {
		category = strings.TrimSpace(category)
		if category == "" {
			continue // falls back to the default category
		}
		mapping[strings.TrimSpace(name)] = category
	}
	return mapping, nil
}

func parseGrouped(data []byte) (map[string]string, error) {
	var g groupedMapping
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("invalid grouped mapping: %w", err)
	}

	mapping := make(map[string]string)
	for category, names := range g.Categories {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		for _, name := range names {
			name = strings.TrimSpace(name)
			if prev, dup := mapping[name]; dup && prev != category {
				return nil, fmt.Errorf("event %q listed under both %q and %q", name, prev, category)
			}
			mapping[name] = category
		}
	}
	return mapping, nil
}
