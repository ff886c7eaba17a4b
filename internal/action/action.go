// Package action implements the system-tag action dispatcher: it resolves
// a bookmark's tag set to one of seven behaviors and executes it.
package action

import (
	"strings"

	"github.com/sysid/bkmr/internal/domain"
)

// Action is an executable bookmark behavior.
type Action interface {
	// Execute runs the action against b, rendering its payload first.
	Execute(b *domain.Bookmark) error
}

// Kind names which Action a bookmark resolved to, for logging and tests.
type Kind string

const (
	KindSnippet  Kind = "snippet"
	KindText     Kind = "text"
	KindShell    Kind = "shell"
	KindMarkdown Kind = "markdown"
	KindEnv      Kind = "env"
	KindURI      Kind = "uri"
	KindDefault  Kind = "default"
)

// Renderer is the interpolation engine's contract from the dispatcher's
// point of view, kept narrow so actions don't depend on the concrete
// engine type.
type Renderer interface {
	Render(payload string, b *domain.Bookmark) (string, error)
}

// Opener hands a URI or file path to the OS's default application.
type Opener interface {
	Open(target string) error
}

// ClipboardSink copies text to the system clipboard.
type ClipboardSink interface {
	Copy(text string) error
}

// PathExister reports whether a filesystem path exists; injected so
// dispatch resolution stays testable without touching the real
// filesystem.
type PathExister func(path string) bool

// Dispatcher resolves a Bookmark to its Action per the fixed priority in
// §4.F: snippet, imported-text, shell, markdown, env, URI-like, default.
type Dispatcher struct {
	Renderer    Renderer
	Clipboard   ClipboardSink
	Opener      Opener
	Shell       ShellRunner
	Editor      string // $EDITOR override, defaults to "vi"
	ShellBinary string // $SHELL override, defaults to "/bin/sh"
	PathExists  PathExister
}

// Resolve implements the priority table in §4.F without executing
// anything, so callers (and tests) can inspect which Kind a bookmark maps
// to independently of running it.
func (d *Dispatcher) Resolve(b *domain.Bookmark) Kind {
	switch {
	case b.HasSystemTag(domain.SystemTagSnippet):
		return KindSnippet
	case b.HasSystemTag(domain.SystemTagText):
		return KindText
	case b.HasSystemTag(domain.SystemTagShell):
		return KindShell
	case b.HasSystemTag(domain.SystemTagMarkdown):
		return KindMarkdown
	case b.HasSystemTag(domain.SystemTagEnv):
		return KindEnv
	case strings.HasPrefix(b.URL, legacyShellPrefix):
		return KindURI
	case b.IsURILike(d.pathExists()):
		return KindURI
	default:
		return KindDefault
	}
}

func (d *Dispatcher) pathExists() PathExister {
	if d.PathExists != nil {
		return d.PathExists
	}
	return defaultPathExists
}

// Build constructs the concrete Action for b's resolved Kind.
func (d *Dispatcher) Build(b *domain.Bookmark) Action {
	switch d.Resolve(b) {
	case KindSnippet:
		return &SnippetAction{Renderer: d.Renderer, Clipboard: d.Clipboard}
	case KindText:
		return &TextAction{Renderer: d.Renderer, Clipboard: d.Clipboard}
	case KindShell:
		return &ShellAction{Renderer: d.Renderer, Shell: d.ShellBinary}
	case KindMarkdown:
		return &MarkdownAction{Renderer: d.Renderer, Opener: d.Opener}
	case KindEnv:
		return &EnvAction{Renderer: d.Renderer}
	case KindURI:
		return &UriAction{Renderer: d.Renderer, Opener: d.Opener, Shell: d.Shell, Editor: d.Editor, PathExists: d.pathExists()}
	default:
		return &DefaultAction{Renderer: d.Renderer, Opener: d.Opener}
	}
}

// Dispatch resolves and executes in one step.
func (d *Dispatcher) Dispatch(b *domain.Bookmark) error {
	return d.Build(b).Execute(b)
}
