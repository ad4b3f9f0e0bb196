package observability

import (
	"fmt"
	"sort"
	"strings"
)

// observers maps the names accepted by the observer config key to their
// constructors. The slog observer resolves slog.Default at emission time, so
// it follows a later log.Init.
var observers = map[string]func() Observer{
	"noop": func() Observer { return NoOpObserver{} },
	"slog": func() Observer { return NewSlogObserver(nil) },
}

// Names returns the known observer names in sorted order.
func Names() []string {
	names := make([]string, 0, len(observers))
	for name := range observers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetObserver returns a new observer by name.
func GetObserver(name string) (Observer, error) {
	newObserver, ok := observers[name]
	if !ok {
		return nil, fmt.Errorf("unknown observer: %s (allowed: %s)", name, strings.Join(Names(), ", "))
	}
	return newObserver(), nil
}
