package render

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// ErrMissingVariable is returned under MissingFail when a template refers to
// a name that is not in the context.
var ErrMissingVariable = errors.New("template variable not defined")

// MissingPolicy decides how a placeholder without a value is rendered.
type MissingPolicy int

const (
	// MissingEmpty renders an empty string and logs a warning.
	MissingEmpty MissingPolicy = iota
	// MissingFail aborts rendering with ErrMissingVariable.
	MissingFail
	// MissingLiteral leaves the placeholder text in the output.
	MissingLiteral
)

func (p MissingPolicy) String() string {
	switch p {
	case MissingEmpty:
		return "empty"
	case MissingFail:
		return "fail"
	case MissingLiteral:
		return "literal"
	default:
		return fmt.Sprintf("MissingPolicy(%d)", int(p))
	}
}

// ParseMissingPolicy maps a configuration value to a MissingPolicy.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "empty":
		return MissingEmpty, nil
	case "fail":
		return MissingFail, nil
	case "literal":
		return MissingLiteral, nil
	default:
		return MissingEmpty, fmt.Errorf("unknown missing variable policy %q", s)
	}
}

// placeholder matches a `{{ expr }}` tag whose expression starts with an
// identifier; group 1 is that root identifier, so `{{ page.title|upper }}`
// yields "page".
var placeholder = regexp.MustCompile(`\{\{-?\s*([A-Za-z_][A-Za-z0-9_]*)[^}]*\}\}`)

// Tags that bind names inside the template.
var (
	withTag   = regexp.MustCompile(`\{%-?\s*with\s+([^%]*)-?%\}`)
	withArg   = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*=`)
	withAs    = regexp.MustCompile(`\bas\s+([A-Za-z_][A-Za-z0-9_]*)`)
	forTag    = regexp.MustCompile(`\{%-?\s*for\s+([A-Za-z_][A-Za-z0-9_]*)(?:\s*,\s*([A-Za-z_][A-Za-z0-9_]*))?\s+in\b`)
	setTag    = regexp.MustCompile(`\{%-?\s*set\s+([A-Za-z_][A-Za-z0-9_]*)\s*=`)
	macroTag  = regexp.MustCompile(`\{%-?\s*macro\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(([^)]*)\)`)
	macroArg  = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)`)
	contextID = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

var keywords = map[string]bool{"true": true, "false": true, "nil": true, "none": true, "forloop": true}

// boundNames returns every name a with, for, set or macro tag introduces.
// Scope is not tracked: a name bound anywhere counts as bound everywhere.
func boundNames(tpl string) map[string]bool {
	bound := map[string]bool{}
	for _, m := range withTag.FindAllStringSubmatch(tpl, -1) {
		for _, a := range withArg.FindAllStringSubmatch(m[1], -1) {
			bound[a[1]] = true
		}
		for _, a := range withAs.FindAllStringSubmatch(m[1], -1) {
			bound[a[1]] = true
		}
	}
	for _, m := range forTag.FindAllStringSubmatch(tpl, -1) {
		bound[m[1]] = true
		if m[2] != "" {
			bound[m[2]] = true
		}
	}
	for _, m := range setTag.FindAllStringSubmatch(tpl, -1) {
		bound[m[1]] = true
	}
	for _, m := range macroTag.FindAllStringSubmatch(tpl, -1) {
		bound[m[1]] = true
		for _, arg := range strings.Split(m[2], ",") {
			if a := macroArg.FindStringSubmatch(arg); a != nil {
				bound[a[1]] = true
			}
		}
	}
	return bound
}

// literalPrefix names the synthetic variables that carry placeholder text
// under MissingLiteral.
const literalPrefix = "placeholder_literal_"

// Templates renders `{{ name }}` style templates against string values.
type Templates struct {
	policy MissingPolicy
	logger *slog.Logger
}

// NewTemplates returns a renderer applying policy to missing names.
func NewTemplates(policy MissingPolicy, logger *slog.Logger) *Templates {
	if logger == nil {
		logger = slog.Default()
	}
	return &Templates{policy: policy, logger: logger}
}

// Policy returns the missing variable policy in effect.
func (t *Templates) Policy() MissingPolicy { return t.policy }

// Render substitutes vars into tpl. Values are inserted as-is, without HTML
// escaping, so rendered content can be placed into a layout.
func (t *Templates) Render(tpl string, vars map[string]string) (string, error) {
	data := make(pongo2.Context, len(vars))
	var skipped []string
	for k, v := range vars {
		if !contextID.MatchString(k) {
			skipped = append(skipped, k)
			continue
		}
		data[k] = pongo2.AsSafeValue(v)
	}
	if len(skipped) > 0 {
		sort.Strings(skipped)
		t.logger.Warn("ignoring template variables with invalid names", "names", skipped)
	}

	bound := boundNames(tpl)
	var missing []string
	src := placeholder.ReplaceAllStringFunc(tpl, func(tag string) string {
		name := placeholder.FindStringSubmatch(tag)[1]
		if _, ok := data[name]; ok || bound[name] || keywords[name] {
			return tag
		}
		missing = append(missing, name)
		if t.policy != MissingLiteral {
			return tag
		}
		key := fmt.Sprintf("%s%d", literalPrefix, len(missing))
		data[key] = pongo2.AsSafeValue(tag)
		return "{{ " + key + " }}"
	})

	if len(missing) > 0 {
		switch t.policy {
		case MissingFail:
			return "", fmt.Errorf("%w: %s", ErrMissingVariable, strings.Join(missing, ", "))
		case MissingEmpty:
			t.logger.Warn("template references undefined variables", "names", missing)
		}
	}

	compiled, err := pongo2.FromString(src)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	out, err := compiled.Execute(data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return out, nil
}
