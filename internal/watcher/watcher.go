// Package watcher monitors a directory for new video files and hands each
// one to a pipeline handler. Failures are isolated per video: one bad file
// never stops the watch loop or other in-flight videos.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler processes one newly appeared video file.
type Handler func(ctx context.Context, videoPath string) error

// settleDelay gives the writer a moment to finish before the pipeline opens
// the file; CREATE fires on open, not on close.
const settleDelay = 500 * time.Millisecond

type Watcher struct {
	dir       string
	handler   Handler
	logf      func(format string, args ...any)
	fw        *fsnotify.Watcher
	semaphore chan struct{}
	wg        sync.WaitGroup
}

func New(dir string, maxConcurrent int, handler Handler, logf func(format string, args ...any)) (*Watcher, error) {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:       dir,
		handler:   handler,
		logf:      logf,
		fw:        fw,
		semaphore: make(chan struct{}, maxConcurrent),
	}, nil
}

// Start blocks, dispatching handlers for new videos until ctx is cancelled.
// In-flight handlers are drained before returning.
func (w *Watcher) Start(ctx context.Context) error {
	w.logf("watching %s for new videos", w.dir)
	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Op.Has(fsnotify.Create) || !isVideoFile(event.Name) {
				continue
			}
			w.logf("new video detected: %s", event.Name)
			select {
			case w.semaphore <- struct{}{}:
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}
			w.wg.Add(1)
			go func(path string) {
				defer w.wg.Done()
				defer func() { <-w.semaphore }()
				time.Sleep(settleDelay)
				if err := w.handler(ctx, path); err != nil {
					w.logf("failed to process %s: %v", path, err)
				}
			}(event.Name)

		case err, ok := <-w.fw.Errors:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.fw.Close()
}

func isVideoFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv":
		return true
	}
	return false
}
