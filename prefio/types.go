package prefio

import (
	"errors"
	"strconv"

	"github.com/katalvlaran/tradecycle/market"
)

var (
	// ErrUnknownFormat indicates a file extension or format name prefio cannot read.
	ErrUnknownFormat = errors.New("prefio: unknown format")

	// ErrEmptyDocument indicates a document with neither "preferences" nor "agents".
	ErrEmptyDocument = errors.New("prefio: document has no preferences or agents")

	// ErrAmbiguousDocument indicates a document with both "preferences" and "agents".
	ErrAmbiguousDocument = errors.New("prefio: document has both preferences and agents")

	// ErrEmptyName indicates a named agent whose name is blank.
	ErrEmptyName = errors.New("prefio: agent name is empty")

	// ErrDuplicateAgent indicates two agents normalizing to the same name.
	ErrDuplicateAgent = errors.New("prefio: duplicate agent name")

	// ErrUnknownAgent indicates a preference naming an agent that does not exist.
	ErrUnknownAgent = errors.New("prefio: unknown agent in preferences")
)

// Format names a document encoding.
type Format string

const (
	// FormatYAML decodes with gopkg.in/yaml.v3.
	FormatYAML Format = "yaml"

	// FormatJSON decodes JSON and JSON5 (comments, trailing commas, unquoted keys).
	FormatJSON Format = "json"
)

// Market is a validated preference matrix with optional agent names.
type Market struct {
	// Names holds agent names by id; nil for numeric documents.
	Names []string

	// Preferences holds each agent's ranking of item ids, most preferred first.
	Preferences [][]int
}

// State returns a fresh market.State over a copy of m.Preferences.
func (m *Market) State() *market.State {
	return market.NewState(m.Preferences)
}

// Len returns the number of agents.
func (m *Market) Len() int { return len(m.Preferences) }

// Label returns the name of agent id, or its decimal id for unnamed markets.
func (m *Market) Label(id int) string {
	if id >= 0 && id < len(m.Names) {
		return m.Names[id]
	}

	return strconv.Itoa(id)
}

type document struct {
	Preferences [][]int    `yaml:"preferences" json:"preferences"`
	Agents      []agentDoc `yaml:"agents" json:"agents"`
}

type agentDoc struct {
	Name    string   `yaml:"name" json:"name"`
	Prefers []string `yaml:"prefers" json:"prefers"`
}
