package prefio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/titanous/json5"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tradecycle/market"
)

// FormatFromPath picks a Format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".json5":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads and parses the preference file at path.
func Load(path string) (*Market, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefio: read %s: %w", path, err)
	}
	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse decodes data in the given format, resolves names and validates the matrix.
func Parse(data []byte, format Format) (*Market, error) {
	var doc document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("prefio: decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json5.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("prefio: decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	m, err := build(&doc)
	if err != nil {
		return nil, err
	}
	if err = market.Validate(m.Preferences); err != nil {
		return nil, fmt.Errorf("prefio: %w", err)
	}

	return m, nil
}

// build turns a decoded document into a Market without validating ids.
func build(doc *document) (*Market, error) {
	hasMatrix, hasAgents := len(doc.Preferences) > 0, len(doc.Agents) > 0
	switch {
	case hasMatrix && hasAgents:
		return nil, ErrAmbiguousDocument
	case hasMatrix:
		return &Market{Preferences: doc.Preferences}, nil
	case !hasAgents:
		return nil, ErrEmptyDocument
	}

	// 1) Assign ids in list order
	names := make([]string, len(doc.Agents))
	ids := make(map[string]int, len(doc.Agents))
	for i, a := range doc.Agents {
		name := CanonicalName(a.Name)
		if name == "" {
			return nil, fmt.Errorf("agent #%d: %w", i, ErrEmptyName)
		}
		if prev, dup := ids[name]; dup {
			return nil, fmt.Errorf("agents #%d and #%d: %w %q", prev, i, ErrDuplicateAgent, name)
		}
		ids[name] = i
		names[i] = name
	}

	// 2) Resolve every preference by name
	prefs := make([][]int, len(doc.Agents))
	for i, a := range doc.Agents {
		prefs[i] = make([]int, 0, len(a.Prefers))
		for _, raw := range a.Prefers {
			id, ok := ids[CanonicalName(raw)]
			if !ok {
				return nil, fmt.Errorf("agent %q: %w %q", names[i], ErrUnknownAgent, raw)
			}
			prefs[i] = append(prefs[i], id)
		}
	}

	return &Market{Names: names, Preferences: prefs}, nil
}

// CanonicalName trims surrounding space and applies Unicode NFC normalization.
func CanonicalName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
