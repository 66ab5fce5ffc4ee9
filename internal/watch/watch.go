// Package watch reloads a script file whenever it is written, so scripts can
// be edited in an external editor while the animation runs.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Update is the new content of the watched file.
type Update struct {
	Path   string
	Source string
}

type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	updates chan Update
	log     *slog.Logger
}

// New watches the directory holding path, since editors often replace files
// rather than writing them in place.
func New(path string, log *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		path:    abs,
		fsw:     fsw,
		updates: make(chan Update, 1),
		log:     log,
	}, nil
}

// Updates delivers file contents. Only the newest pending update is kept.
func (w *Watcher) Updates() <-chan Update { return w.updates }

// Read returns the current content of the watched file.
func (w *Watcher) Read() (Update, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return Update{}, err
	}
	return Update{Path: w.path, Source: Normalize(string(data))}, nil
}

// Run forwards changes until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			u, err := w.Read()
			if err != nil {
				w.log.Warn("watched script unreadable", "path", w.path, "err", err)
				continue
			}
			w.log.Debug("watched script changed", "path", w.path)
			w.publish(u)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) publish(u Update) {
	select {
	case w.updates <- u:
		return
	default:
	}
	// drop the stale pending update
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- u:
	default:
	}
}

// Normalize joins the lines of a script file into the single-line form the
// editor works with. Lines starting with # are comments.
func Normalize(s string) string {
	var parts []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
