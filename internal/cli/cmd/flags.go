package cmd

import (
	"strings"

	"github.com/dsmlang/dsm/internal/dsm"
)

// stringListFlag collects repeated -var name=value flags into a map
// suitable for dsm.NewMachine's baseline parameter.
type stringListFlag []string

func (f *stringListFlag) String() string { return strings.Join(*f, ",") }

func (f *stringListFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func (f stringListFlag) asMap() (map[string]string, error) {
	if len(f) == 0 {
		return nil, nil
	}

	m := make(map[string]string, len(f))

	for _, pair := range f {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, &dsm.ValueError{Value: pair}
		}

		m[name] = value
	}

	return m, nil
}
