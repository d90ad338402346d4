package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Event describes a document the watcher saw change. File is nil when
// Removed is set.
type Event struct {
	Path    string
	File    *File
	Removed bool
}

type stamp struct {
	modTime time.Time
	size    int64
}

// FileWatcher polls the workspace root and rechecks documents whose
// modification time or size changed.
type FileWatcher struct {
	workspace    *Workspace
	pollInterval time.Duration
	onChange     func(Event)
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
	stamps       map[string]stamp
}

// NewFileWatcher returns a watcher calling onChange, which may be nil, from
// the polling goroutine.
func NewFileWatcher(w *Workspace, interval time.Duration, onChange func(Event)) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		workspace:    w,
		pollInterval: interval,
		onChange:     onChange,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		stamps:       make(map[string]stamp),
	}
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

// Stop ends polling and waits for the goroutine started by Start. It must
// not be called without a prior Start.
func (fw *FileWatcher) Stop() {
	fw.stopOnce.Do(func() {
		close(fw.stopCh)
	})
	<-fw.doneCh
}

func (fw *FileWatcher) run() {
	defer close(fw.doneCh)

	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	fw.Poll()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.Poll()
		}
	}
}

// Poll runs a single scan. It is not safe to call while the watcher is
// running.
func (fw *FileWatcher) Poll() {
	current := make(map[string]bool)
	root := fw.workspace.RootDir()

	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fw.workspace.IsDocument(path) {
			return nil
		}

		current[path] = true

		st := stamp{modTime: info.ModTime(), size: info.Size()}
		last, known := fw.stamps[path]
		if known && last == st {
			return nil
		}
		f, err := fw.workspace.ScanFile(path)
		if err != nil {
			log.Warningf("rescan %s: %v", path, err)
			return nil
		}
		fw.stamps[path] = st
		fw.notify(Event{Path: path, File: f})
		return nil
	})

	for path := range fw.stamps {
		if !current[path] {
			delete(fw.stamps, path)
			fw.workspace.RemoveFile(path)
			fw.notify(Event{Path: path, Removed: true})
		}
	}
}

func (fw *FileWatcher) notify(ev Event) {
	if fw.onChange != nil {
		fw.onChange(ev)
	}
}
