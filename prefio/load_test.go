package prefio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tradecycle/market"
	"github.com/katalvlaran/tradecycle/prefio"
)

func TestLoad_YAMLMatrix(t *testing.T) {
	m, err := prefio.Load(filepath.Join("testdata", "rotation.yaml"))
	require.NoError(t, err)
	assert.Nil(t, m.Names)
	assert.Equal(t, [][]int{{1, 2, 0}, {2, 0, 1}, {0, 1, 2}}, m.Preferences)
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, "2", m.Label(2))
	assert.Equal(t, 3, m.State().ActiveCount())
}

func TestLoad_JSON5Agents(t *testing.T) {
	m, err := prefio.Load(filepath.Join("testdata", "houses.json5"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ana", "ben", "cy"}, m.Names)
	assert.Equal(t, [][]int{{1, 2, 0}, {0, 1}, {2}}, m.Preferences)
	assert.Equal(t, "ben", m.Label(1))
}

func TestLoad_Errors(t *testing.T) {
	_, err := prefio.Load("market.toml")
	assert.ErrorIs(t, err, prefio.ErrUnknownFormat)

	_, err = prefio.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_NormalizesNames(t *testing.T) {
	composed := "Jos\u00e9"
	decomposed := "Jose\u0301"
	doc := "agents:\n" +
		"  - name: \" " + composed + " \"\n" +
		"    prefers: [\"" + decomposed + "\"]\n"

	m, err := prefio.Parse([]byte(doc), prefio.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{composed}, m.Names)
	assert.Equal(t, [][]int{{0}}, m.Preferences)
	assert.Equal(t, composed, prefio.CanonicalName(decomposed))
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name   string
		doc    string
		format prefio.Format
		want   error
	}{
		{"empty yaml", "", prefio.FormatYAML, prefio.ErrEmptyDocument},
		{"empty json", "{}", prefio.FormatJSON, prefio.ErrEmptyDocument},
		{"both shapes", "preferences: [[0]]\nagents: [{name: a, prefers: [a]}]\n", prefio.FormatYAML, prefio.ErrAmbiguousDocument},
		{"blank name", `{"agents": [{"name": "  ", "prefers": []}]}`, prefio.FormatJSON, prefio.ErrEmptyName},
		{"duplicate name", "agents:\n  - {name: a, prefers: [a]}\n  - {name: a, prefers: [a]}\n", prefio.FormatYAML, prefio.ErrDuplicateAgent},
		{"unknown agent", "agents:\n  - {name: a, prefers: [b, a]}\n", prefio.FormatYAML, prefio.ErrUnknownAgent},
		{"out of range id", "preferences: [[1, 0]]\n", prefio.FormatYAML, market.ErrItemOutOfRange},
		{"tie", `{"preferences": [[1, 1, 0], [1, 0]]}`, prefio.FormatJSON, market.ErrDuplicateItem},
		{"own item missing", "preferences: [[1], [0, 1]]\n", prefio.FormatYAML, market.ErrMissingOwnItem},
		{"bad format", "{}", prefio.Format("toml"), prefio.ErrUnknownFormat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := prefio.Parse([]byte(tc.doc), tc.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse_RejectsUnknownYAMLFields(t *testing.T) {
	_, err := prefio.Parse([]byte("prefs: [[0]]\n"), prefio.FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode yaml")
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]prefio.Format{
		"a.yaml":  prefio.FormatYAML,
		"a.YML":   prefio.FormatYAML,
		"a.json":  prefio.FormatJSON,
		"a.json5": prefio.FormatJSON,
	} {
		got, err := prefio.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}
