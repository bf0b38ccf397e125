package assets

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

//go:embed official.toml
var officialTOML []byte

// Official holds the ids of content shipped by the base game and its
// official packs, keyed by kind category.
type Official struct {
	ids map[string]map[string]struct{}
}

var builtinOfficial = mustParseOfficial(officialTOML)

// BuiltinOfficial returns a copy of the allowlists embedded in the binary.
func BuiltinOfficial() Official {
	return builtinOfficial.With(nil)
}

// ParseOfficial decodes TOML of the form `cars = ["abarth500", ...]`.
func ParseOfficial(data []byte) (Official, error) {
	var raw map[string][]string
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Official{}, fmt.Errorf("decode official ids: %w", err)
	}
	return Official{}.With(raw), nil
}

func mustParseOfficial(data []byte) Official {
	official, err := ParseOfficial(data)
	if err != nil {
		panic(err)
	}
	return official
}

// With returns a copy extended by extra ids per category.
func (o Official) With(extra map[string][]string) Official {
	out := Official{ids: make(map[string]map[string]struct{}, len(o.ids)+len(extra))}
	for category, ids := range o.ids {
		set := make(map[string]struct{}, len(ids))
		for id := range ids {
			set[id] = struct{}{}
		}
		out.ids[category] = set
	}
	for category, ids := range extra {
		set := out.ids[category]
		if set == nil {
			set = make(map[string]struct{}, len(ids))
			out.ids[category] = set
		}
		for _, id := range ids {
			set[id] = struct{}{}
		}
	}
	return out
}

// Contains reports whether id is official content of kind k.
func (o Official) Contains(k Kind, id string) bool {
	set := o.ids[k.Descriptor().Category]
	if set == nil {
		return false
	}
	_, ok := set[id]
	return ok
}

// IDs returns the sorted official ids for kind k.
func (o Official) IDs(k Kind) []string {
	set := o.ids[k.Descriptor().Category]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
