// Package docs renders the built-in documentation topics.
package docs

import (
	"embed"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/muesli/termenv"
)

//go:embed topics/*.md
var topicsFS embed.FS

// Topics lists the available topic names, sorted.
func Topics() []string {
	entries, err := topicsFS.ReadDir("topics")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

// Render returns a topic formatted for the terminal. Rendering failures fall
// back to the raw markdown; an unknown topic is an input error.
func Render(topic string) (string, error) {
	raw, err := topicsFS.ReadFile("topics/" + topic + ".md")
	if err != nil {
		return "", errors.Newf(errors.ErrNotFound, "unknown topic %q (available: %s)", topic, strings.Join(Topics(), ", "))
	}

	options := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	if termenv.EnvColorProfile() == termenv.Ascii {
		options = append(options, glamour.WithStandardStyle("notty"))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return string(raw), nil
	}

	rendered, err := renderer.Render(string(raw))
	if err != nil {
		return string(raw), nil
	}
	return rendered, nil
}
