package buffer

import (
	"path/filepath"
	"strings"

	"github.com/fivemoreminix/pyedit/syntax"
)

// A Registry knows which language support to use for a file.
type Registry struct {
	byFiletype map[string]*syntax.Support
}

// NewRegistry indexes supports by the filetypes of their languages. When two
// languages claim a filetype, the first one listed keeps it.
func NewRegistry(supports ...*syntax.Support) *Registry {
	r := &Registry{byFiletype: make(map[string]*syntax.Support)}
	for _, s := range supports {
		for _, ft := range s.Language.Filetypes() {
			ft = strings.ToLower(ft)
			if _, taken := r.byFiletype[ft]; !taken {
				r.byFiletype[ft] = s
			}
		}
	}
	return r
}

// ForPath returns the support for path's extension, or nil for plain text.
func (r *Registry) ForPath(path string) *syntax.Support {
	return r.byFiletype[strings.ToLower(filepath.Ext(path))]
}
