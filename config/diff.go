package config

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff compares the YAML form of two configs line by line and returns the
// changed lines prefixed with "+ " or "- ". Unchanged lines are omitted.
func Diff(before, after *Config) ([]string, error) {
	a, err := before.Marshal()
	if err != nil {
		return nil, err
	}
	b, err := after.Marshal()
	if err != nil {
		return nil, err
	}

	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(string(a), string(b))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var changes []string
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		default:
			continue
		}
		for _, line := range strings.Split(d.Text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			changes = append(changes, prefix+line)
		}
	}
	return changes, nil
}
