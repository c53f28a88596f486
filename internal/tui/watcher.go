package tui

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// storeChangedMsg tells the program the store file was rewritten.
type storeChangedMsg struct{}

// fileWatcher reports rewrites of one file. Saves replace the file by
// rename, so the parent directory is watched and events are matched by name.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	logger  zerolog.Logger
	changed chan struct{}
	stopCh  chan struct{}
}

func newFileWatcher(path string, logger zerolog.Logger) (*fileWatcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	fw := &fileWatcher{
		watcher: w,
		path:    filepath.Clean(path),
		logger:  logger,
		changed: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
	go fw.run()
	return fw, nil
}

func (fw *fileWatcher) run() {
	defer close(fw.changed)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				fw.logger.Debug().Str("op", event.Op.String()).Msg("store file changed")
				// Coalesce bursts: one pending notification is enough.
				select {
				case fw.changed <- struct{}{}:
				default:
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error().Err(err).Msg("file watcher error")

		case <-fw.stopCh:
			return
		}
	}
}

// wait blocks until the next change and delivers it to the program.
func (fw *fileWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-fw.changed; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (fw *fileWatcher) Close() error {
	close(fw.stopCh)
	return fw.watcher.Close()
}
