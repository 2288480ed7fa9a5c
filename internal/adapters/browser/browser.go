// Package browser opens URLs in the user's web browsers.
package browser

import (
	"errors"
	"io"
	"os/exec"
	"runtime"

	"github.com/pkg/browser"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BrowserOpener = (*Opener)(nil)

func init() {
	// Browser launchers print to the terminal otherwise, which corrupts the TUI.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// Opener implements ports.BrowserOpener.
type Opener struct {
	goos        string
	openDefault func(url string) error
	start       func(name string, args ...string) error
}

// New creates an Opener for the host operating system.
func New() *Opener {
	return &Opener{
		goos:        runtime.GOOS,
		openDefault: browser.OpenURL,
		start:       startDetached,
	}
}

// Open opens url in each named browser, or in the system default browser when
// browsers is empty. It fails only if no browser could be launched.
func (o *Opener) Open(url string, browsers []string) error {
	if len(browsers) == 0 {
		if err := o.openDefault(url); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrBrowserOpenFailed.Error()), "url", url)
		}
		return nil
	}

	var errs []error
	opened := 0
	for _, name := range browsers {
		argv := o.command(name, url)
		if err := o.start(argv[0], argv[1:]...); err != nil {
			errs = append(errs, zerr.With(err, "browser", name))
			continue
		}
		opened++
	}

	if opened == 0 {
		return zerr.With(zerr.Wrap(errors.Join(errs...), domain.ErrBrowserOpenFailed.Error()), "url", url)
	}
	return nil
}

// command returns the argv that opens url in the named browser. On macOS
// browsers are application bundles and must go through open(1).
func (o *Opener) command(name, url string) []string {
	if o.goos == "darwin" {
		return []string{"open", "-a", name, url}
	}
	return []string{name, url}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...) //nolint:gosec // browser names come from the project configuration
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
