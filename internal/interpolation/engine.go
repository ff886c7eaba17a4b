// Package interpolation renders bookmark payloads as Jinja-style templates.
// It is built on text/template, whose pipe-filter syntax ({{ .Foo | filter }})
// already matches the custom-filter shape the engine needs; no third-party
// templating library appears anywhere in the corpus (see DESIGN.md).
package interpolation

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/sysid/bkmr/internal/domain"
)

// ShellExecutor runs a shell command and returns its captured stdout, or
// an error if the guard rejects it or the command exits non-zero. It is
// one of the engine's two extension points (the other being the renderer
// itself), matching original_source's injected ShellCommandExecutor.
type ShellExecutor interface {
	Run(command string) (string, error)
}

// Engine renders bookmark payloads. It is safe for concurrent use.
type Engine struct {
	shell ShellExecutor
}

// New constructs an Engine whose "shell" filter delegates to shell.
func New(shell ShellExecutor) *Engine {
	return &Engine{shell: shell}
}

// NeedsRendering reports whether s contains template syntax; non-template
// payloads are returned byte-for-byte without ever reaching the template
// engine, both for speed and to avoid mangling literal "{{" in, say, a
// shell script that isn't meant to be a template.
func NeedsRendering(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

// Render interpolates payload against b's fields and the process
// environment. If payload doesn't need rendering it is returned unchanged.
func (e *Engine) Render(payload string, b *domain.Bookmark) (string, error) {
	if !NeedsRendering(payload) {
		return payload, nil
	}
	tmpl, err := template.New("bookmark").Funcs(e.funcMap()).Parse(injectDotPrefix(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTemplateFailure, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, e.context(b)); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTemplateFailure, err)
	}
	return buf.String(), nil
}

// context builds the template variable set: bookmark fields (when b is
// non-nil), current_date, and every process environment variable exposed
// as env_<NAME>.
func (e *Engine) context(b *domain.Bookmark) map[string]any {
	ctx := map[string]any{
		"current_date": time.Now().UTC().Format(time.RFC3339),
	}
	if b != nil {
		tags := make([]string, len(b.Tags))
		for i, t := range b.Tags {
			tags[i] = t.Value()
		}
		ctx["id"] = b.ID
		ctx["title"] = b.Title
		ctx["description"] = b.Description
		ctx["tags"] = tags
		ctx["access_count"] = b.AccessCount
		ctx["created_at"] = b.CreatedAt.UTC().Format(time.RFC3339)
		ctx["updated_at"] = b.UpdatedAt.UTC().Format(time.RFC3339)
	}
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			ctx["env_"+kv[:i]] = kv[i+1:]
		}
	}
	return ctx
}

// bareVarNames are the bookmark/context fields exposed as Jinja-style bare
// names (SPEC_FULL.md §4.E, e.g. "{{ title | lower }}"). text/template has
// no bare-name data access of its own - an unqualified identifier resolves
// as a function call - so injectDotPrefix rewrites these into the ".field"
// form text/template understands before Parse ever sees the payload.
var bareVarNames = []string{
	"current_date", "access_count", "created_at", "updated_at",
	"description", "title", "tags", "id",
}

// bareVarPattern matches a bare context identifier that isn't already
// dot-qualified: the identifier (one of bareVarNames, or an env_<NAME>
// variable) preceded by either the start of the action or a character that
// is neither '.' nor a word character.
var bareVarPattern = regexp.MustCompile(
	`(^|[^.\w])(` + strings.Join(bareVarNames, "|") + `|env_\w+)\b`,
)

// actionPattern finds {{ ... }} template actions within a payload so
// bare-name rewriting never touches surrounding literal text.
var actionPattern = regexp.MustCompile(`\{\{.*?\}\}`)

// injectDotPrefix rewrites every bare context identifier inside {{ }}
// actions to its ".field" form, leaving already-dotted references
// (".title"), filter/function names, and literal text untouched.
func injectDotPrefix(payload string) string {
	return actionPattern.ReplaceAllStringFunc(payload, func(action string) string {
		return bareVarPattern.ReplaceAllString(action, "$1.$2")
	})
}

func (e *Engine) funcMap() template.FuncMap {
	return template.FuncMap{
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"env":   envFunc,
		"strftime": func(layout string, rfc3339 string) (string, error) {
			return strftime(rfc3339, layout)
		},
		"add_days": func(n int, rfc3339 string) (string, error) {
			return shiftDays(rfc3339, n)
		},
		"subtract_days": func(n int, rfc3339 string) (string, error) {
			return shiftDays(rfc3339, -n)
		},
		"shell": func(command string) (string, error) {
			if e.shell == nil {
				return "", fmt.Errorf("%w: no shell executor configured", domain.ErrTemplateFailure)
			}
			out, err := e.shell.Run(command)
			if err != nil {
				return "", fmt.Errorf("%w: %v", domain.ErrTemplateFailure, err)
			}
			return out, nil
		},
	}
}

// envFunc implements the global env(name, default="") function.
func envFunc(name string, defaultValue ...string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func strftime(rfc3339, layout string) (string, error) {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return "", fmt.Errorf("%w: strftime: %v", domain.ErrTemplateFailure, err)
	}
	return t.Format(goLayout(layout)), nil
}

func shiftDays(rfc3339 string, n int) (string, error) {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return "", fmt.Errorf("%w: date shift: %v", domain.ErrTemplateFailure, err)
	}
	return t.AddDate(0, 0, n).Format(time.RFC3339), nil
}

// goLayout translates a handful of common strftime-style directives into
// Go's reference-time layout; anything else passes through unchanged so
// callers can also supply a literal Go layout string.
func goLayout(strftimeLayout string) string {
	replacer := strings.NewReplacer(
		"%Y", "2006", "%m", "01", "%d", "02",
		"%H", "15", "%M", "04", "%S", "05",
		"%b", "Jan", "%B", "January", "%a", "Mon", "%A", "Monday",
	)
	return replacer.Replace(strftimeLayout)
}
