// Package gazetteer loads the set of known given names used to recognize a
// speaker's name. The file is read once; lookups afterwards are pure reads.
package gazetteer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned when a gazetteer file holds no names.
var ErrEmpty = errors.New("gazetteer: no names")

// Gazetteer is an immutable set of lower-case given names.
type Gazetteer struct {
	names map[string]struct{}
}

// New builds a Gazetteer from names, lower-casing each one.
func New(names []string) *Gazetteer {
	g := &Gazetteer{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		g.names[strings.ToLower(n)] = struct{}{}
	}
	return g
}

// Load reads a gazetteer file. The format follows the extension: .json holds
// a JSON array of strings, .yaml/.yml a YAML list, anything else one name per
// line ("#" starts a comment).
func Load(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: read %s: %w", path, err)
	}

	var names []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &names); err != nil {
			return nil, fmt.Errorf("gazetteer: decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &names); err != nil {
			return nil, fmt.Errorf("gazetteer: decode %s: %w", path, err)
		}
	default:
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			names = append(names, line)
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("gazetteer: scan %s: %w", path, err)
		}
	}

	g := New(names)
	if g.Len() == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmpty, path)
	}
	return g, nil
}

// Contains reports whether name is in the set. The caller lower-cases.
func (g *Gazetteer) Contains(name string) bool {
	_, ok := g.names[name]
	return ok
}

// Len returns the number of distinct names.
func (g *Gazetteer) Len() int { return len(g.names) }
