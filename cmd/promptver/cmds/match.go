package cmds

import (
	"github.com/go-go-golems/promptver/pkg/catalog"
	"github.com/mb0/glob"
	"github.com/pkg/errors"
)

// MatchNames keeps the names matching any of patterns, in names order. No
// patterns keeps everything. A pattern matching nothing is an error.
func MatchNames(names []string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return names, nil
	}

	selected := map[string]bool{}
	for _, pattern := range patterns {
		found := false
		for _, name := range names {
			matching, err := glob.Match(pattern, name)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid pattern %s", pattern)
			}
			if matching {
				selected[name] = true
				found = true
			}
		}
		if !found {
			return nil, errors.Wrapf(catalog.ErrPromptNotFound, "no prompt matches %s", pattern)
		}
	}

	ret := []string{}
	for _, name := range names {
		if selected[name] {
			ret = append(ret, name)
		}
	}
	return ret, nil
}
