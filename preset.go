package headers

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// LoadPreset loads the header document found in the filename into a new
// instance of the `Headers`. The document is a name to value(s) map in the
// format chosen by the extension of the filename (".toml", ".yaml", ".yml",
// ".json" or ".ini") and is seeded like the `New` does.
func LoadPreset(filename string) (*Headers, error) {
	m, err := decodeFile(filename)
	if err != nil {
		return nil, err
	}

	return New(m), nil
}

// Preset is a header document that reloads itself when its file changes.
type Preset struct {
	filename string
	mutex    *sync.RWMutex
	headers  *Headers
	err      error
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// OpenPreset loads the header document found in the filename and keeps
// watching it.
func OpenPreset(filename string) (*Preset, error) {
	fn, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}

	h, err := LoadPreset(fn)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Editors often replace the file, so its directory is watched.
	if err := w.Add(filepath.Dir(fn)); err != nil {
		w.Close()
		return nil, err
	}

	p := &Preset{
		filename: fn,
		mutex:    &sync.RWMutex{},
		headers:  h,
		watcher:  w,
		done:     make(chan struct{}),
	}

	go p.watch()

	return p, nil
}

// Headers returns a copy of the last successfully loaded headers of the p.
func (p *Preset) Headers() *Headers {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.headers.Clone()
}

// Err returns the error of the last reload of the p. It returns nil if the
// last reload succeeded.
func (p *Preset) Err() error {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.err
}

// Close stops watching the file of the p.
func (p *Preset) Close() error {
	err := p.watcher.Close()
	<-p.done
	return err
}

// watch watches the changing of the file of the p.
func (p *Preset) watch() {
	defer close(p.done)
	for {
		select {
		case e, ok := <-p.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(e.Name) != p.filename ||
				e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			DEBUG(
				"headers: preset file event occurs",
				map[string]interface{}{
					"file":  e.Name,
					"event": e.Op.String(),
				},
			)

			p.reload()
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}

			ERROR(
				"headers: preset watcher error",
				map[string]interface{}{
					"file":  p.filename,
					"error": err.Error(),
				},
			)
		}
	}
}

// reload reloads the file of the p. The last good headers are kept on
// failure.
func (p *Preset) reload() {
	h, err := LoadPreset(p.filename)

	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.err = err
	if err != nil {
		ERROR(
			"headers: failed to reload preset",
			map[string]interface{}{
				"file":  p.filename,
				"error": err.Error(),
			},
		)

		return
	}

	p.headers = h
}
