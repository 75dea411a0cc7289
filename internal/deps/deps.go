// Package deps reports the availability of external binaries without
// side effects. Absence is an expected outcome, never an error.
package deps

import (
	"fmt"
	"strings"

	"bpmsetup/internal/runner"
)

// Requirement defines an external dependency bpmsetup relies on.
// Commands lists invocation names tried in order; the first that
// resolves wins.
type Requirement struct {
	Name        string
	Commands    []string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements against env and
// reports availability.
func CheckBinaries(env runner.Env, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{
			Name:        req.Name,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		commands := trimmed(req.Commands)
		if len(commands) == 0 {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		name, ok := resolveFirst(env, commands)
		if !ok {
			status.Command = commands[0]
			status.Detail = fmt.Sprintf("none of %s found", quoteList(commands))
			results = append(results, status)
			continue
		}
		status.Command = name
		status.Available = true
		results = append(results, status)
	}
	return results
}

// ResolvePython returns the first interpreter name from names that
// resolves through env.
func ResolvePython(env runner.Env, names []string) (string, bool) {
	return resolveFirst(env, trimmed(names))
}

func resolveFirst(env runner.Env, names []string) (string, bool) {
	for _, name := range names {
		if _, err := env.LookPath(name); err == nil {
			return name, true
		}
	}
	return "", false
}

func trimmed(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}

func quoteList(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, fmt.Sprintf("%q", name))
	}
	return strings.Join(quoted, ", ")
}
