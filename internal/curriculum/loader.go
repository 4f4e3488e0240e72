package curriculum

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDir walks dir and builds a Graph from every topic YAML file found.
// A file may contain a single topic document or a list of topics. Files
// that fail to parse abort the load: a partially loaded curriculum would
// silently change eligibility.
func LoadDir(dir string) (*Graph, error) {
	var topics []Topic

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}

		loaded, err := LoadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		topics = append(topics, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load curriculum dir: %w", err)
	}

	if len(topics) == 0 {
		return nil, fmt.Errorf("load curriculum dir: no topic files under %s", dir)
	}
	return New(topics)
}

// LoadFile parses one YAML file into topics. Accepts either
//
//	id: py.basics
//	label: Python Basics
//
// or a document with a top-level "topics" list.
func LoadFile(path string) ([]Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseTopics(data)
}

func parseTopics(data []byte) ([]Topic, error) {
	// Try the list form first.
	var doc struct {
		Topics []Topic `yaml:"topics"`
	}
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Topics) > 0 {
		return doc.Topics, nil
	}

	var single Topic
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parse topic YAML: %w", err)
	}
	if single.ID == "" {
		return nil, fmt.Errorf("parse topic YAML: no topic ID found")
	}
	return []Topic{single}, nil
}
