// Package profile defines the closed set of extension profiles and the data
// tables behind them.
package profile

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Profile selects a fixed extension list for the deployed configuration.
type Profile string

const (
	Full        Profile = "full"
	Minimal     Profile = "minimal"
	DataScience Profile = "data-science"
	Web         Profile = "web"
	Custom      Profile = "custom"
)

//go:embed profiles.toml
var profilesTOML []byte

type profileTable struct {
	Profiles map[string][]string `toml:"profiles"`
}

var extensionTable map[string][]string

func init() {
	var table profileTable
	if err := toml.Unmarshal(profilesTOML, &table); err != nil {
		panic(fmt.Sprintf("embedded profiles.toml is invalid: %v", err))
	}
	extensionTable = table.Profiles
}

// Parse validates a profile name. Unknown names are rejected before any file
// is touched.
func Parse(name string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case Full, Minimal, DataScience, Web, Custom:
		return p, nil
	}
	return "", errors.Newf(errors.ErrProfileUnknown, "unknown profile %q (valid: %s)", name, strings.Join(Names(), ", "))
}

// Passthrough reports whether the profile leaves the deployed extension list
// alone. full ships the template's complete list; custom means the user
// maintains the list by hand.
func (p Profile) Passthrough() bool {
	return p == Full || p == Custom
}

// Extensions returns the fixed extension list for a replacing profile.
// Passthrough profiles have no list.
func (p Profile) Extensions() []string {
	exts, ok := extensionTable[string(p)]
	if !ok {
		return nil
	}
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

// Names returns all valid profile names, sorted.
func Names() []string {
	names := []string{string(Full), string(Minimal), string(DataScience), string(Web), string(Custom)}
	sort.Strings(names)
	return names
}
