package gdml

import (
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/chazu/hadesgeom/pkg/scene"
)

//go:embed templates/*.gdml
var templates embed.FS

// Render substitutes the replacement values into the named template and
// returns the resulting geometry description text. Substitution is raw text
// replacement, longest token first so that tokens containing other tokens
// cannot be clobbered. Values are formatted at full precision.
func Render(name string, replacements map[string]float64) (string, error) {
	raw, err := templates.ReadFile("templates/" + name + ".gdml")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, strconv.FormatFloat(replacements[k], 'g', -1, 64))
	}
	return strings.NewReplacer(pairs...).Replace(string(raw)), nil
}

// Build renders the named template with the replacements and parses the
// result into a scene graph.
func Build(name string, replacements map[string]float64) (*scene.SceneGraph, error) {
	text, err := Render(name, replacements)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}
