// Package workspace keeps the checked state of every module document
// under a root directory.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/modcheck/modlang"
)

var log = commonlog.GetLogger("modcheck.workspace")

type Option func(*Workspace)

// WithExtension sets the file extension of module documents (default ".mod").
func WithExtension(ext string) Option {
	return func(w *Workspace) {
		w.ext = ext
	}
}

// WithParserOptions sets the options every document is checked with.
func WithParserOptions(opts ...modlang.Option) Option {
	return func(w *Workspace) {
		w.parserOpts = append(w.parserOpts, opts...)
	}
}

type Workspace struct {
	mu         sync.RWMutex
	rootDir    string
	ext        string
	parserOpts []modlang.Option
	files      map[string]*File
}

type File struct {
	Path    string
	Content []byte
	Result  modlang.Result
}

func (f *File) Valid() bool {
	return f.Result.Valid
}

func New(rootDir string, opts ...Option) *Workspace {
	w := &Workspace{
		rootDir: rootDir,
		ext:     ".mod",
		files:   make(map[string]*File),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// IsDocument reports whether path has the module document extension.
func (w *Workspace) IsDocument(path string) bool {
	return filepath.Ext(path) == w.ext
}

// ScanAll checks every document below the root, skipping dot directories.
func (w *Workspace) ScanAll() error {
	var scanned, invalid int
	err := filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warningf("walk %s: %v", path, err)
			return nil
		}
		if info.IsDir() {
			if path != w.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !w.IsDocument(path) {
			return nil
		}
		f, err := w.ScanFile(path)
		if err != nil {
			log.Warningf("scan %s: %v", path, err)
			return nil
		}
		scanned++
		if !f.Valid() {
			invalid++
		}
		return nil
	})
	log.Infof("scanned %d documents under %s, %d invalid", scanned, w.rootDir, invalid)
	return err
}

func (w *Workspace) ScanFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, content), nil
}

// UpdateFile checks content and records it as the current state of path.
func (w *Workspace) UpdateFile(path string, content []byte) *File {
	opts := append([]modlang.Option{modlang.WithFile(path)}, w.parserOpts...)
	f := &File{
		Path:    path,
		Content: content,
		Result:  modlang.Check(string(content), opts...),
	}
	if f.Valid() {
		log.Debugf("%s: valid", path)
	} else {
		log.Debugf("%s: %s", path, f.Result.Diagnostic)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = f
	return f
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns all known documents sorted by path.
func (w *Workspace) Files() []*File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*File, 0, len(w.files))
	for _, f := range w.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// Invalid returns the documents that failed to check, sorted by path.
func (w *Workspace) Invalid() []*File {
	var out []*File
	for _, f := range w.Files() {
		if !f.Valid() {
			out = append(out, f)
		}
	}
	return out
}
