package template

import (
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"
)

// Parser is the interface for parsing HTML templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any)
	Parse(fps ...string) (*html.Template, error)
}

// Parse implements Parser with a focus on utilizing embedded HTML templates through fs.FS.
//
// Functions must be added before templates are parsed concurrently.
type Parse struct {
	fs  fs.FS
	fns html.FuncMap
}

// NewParser constructs a Parse with the provided functional options.
// Without WithFS, templates are read from the working directory.
func NewParser(opts ...ParserOptFn) Parser {
	p := &Parse{fns: defaultFns()}
	for _, opt := range opts {
		opt(p)
	}

	userFS := p.fs
	if userFS == nil {
		userFS = os.DirFS(".")
	}

	p.fs = newMergeFS(userFS, pkgFS)

	return p
}

// Parse parses files found in the *Parse.fs with those functions provided previously.
// The returned template is named after the first non-empty file path.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	return html.New(path.Base(files[0])).Funcs(p.fns).ParseFS(p.fs, files...)
}
