// Package permission asks for the right to write sketches before a save.
package permission

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// Requester resolves a storage permission request. A false result with a nil
// error means the user or the platform said no.
type Requester interface {
	Request(ctx context.Context, title, message string) (bool, error)
}

// Dialog asks through a confirm dialog on Window. A grant is remembered for
// the lifetime of the Dialog. Request must not be called from the UI
// goroutine because it blocks until the dialog is answered.
type Dialog struct {
	Window fyne.Window

	mu      sync.Mutex
	granted bool
}

func (d *Dialog) Request(ctx context.Context, title, message string) (bool, error) {
	d.mu.Lock()
	granted := d.granted
	d.mu.Unlock()
	if granted {
		return true, nil
	}

	answer := make(chan bool, 1)
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, func(ok bool) { answer <- ok }, d.Window)
	})

	select {
	case ok := <-answer:
		if ok {
			d.mu.Lock()
			d.granted = true
			d.mu.Unlock()
		}
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Directory grants permission when Path exists, or can be created, and
// accepts new files.
type Directory struct {
	Path string
}

func (d Directory) Request(_ context.Context, title, _ string) (bool, error) {
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			log.Printf("[PERMISSION] %s: %s is not writable", title, d.Path)
			return false, nil
		}
		return false, fmt.Errorf("prepare %s: %w", d.Path, err)
	}

	f, err := os.CreateTemp(d.Path, ".probe-*")
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			log.Printf("[PERMISSION] %s: %s is not writable", title, d.Path)
			return false, nil
		}
		return false, fmt.Errorf("probe %s: %w", d.Path, err)
	}
	name := f.Name()
	f.Close()
	_ = os.Remove(name)
	return true, nil
}

// All grants only when every requester grants, asking them in order and
// stopping at the first refusal or error.
func All(requesters ...Requester) Requester {
	return chain(requesters)
}

type chain []Requester

func (c chain) Request(ctx context.Context, title, message string) (bool, error) {
	for _, r := range c {
		ok, err := r.Request(ctx, title, message)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
