package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// command is one way of handing a URL to the desktop
type command struct {
	name string
	args func(target string) []string
}

// Opener opens deck pages in the user's browser with the platform's URL handler
type Opener struct {
	candidates []command
	lookPath   func(string) (string, error)
	start      func(ctx context.Context, name string, args ...string) error
}

// NewOpener creates an opener for the current platform
func NewOpener() *Opener {
	return &Opener{
		candidates: platformCommands(runtime.GOOS),
		lookPath:   exec.LookPath,
		start:      startDetached,
	}
}

// Open hands target to the first available URL handler without waiting for it
func (o *Opener) Open(ctx context.Context, target string) error {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("refusing to open %q: not an http url", target)
	}

	for _, c := range o.candidates {
		if _, err := o.lookPath(c.name); err != nil {
			continue
		}
		if err := o.start(ctx, c.name, c.args(target)...); err != nil {
			return fmt.Errorf("launching %s: %w", c.name, err)
		}
		return nil
	}

	return errors.New("no browser launcher found on this system")
}

// startDetached starts the launcher and reaps it in the background. ctx only
// gates the start; the browser outlives the server.
func startDetached(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(name, args...) // #nosec G204 - fixed launcher, url validated by Open
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func platformCommands(goos string) []command {
	plain := func(target string) []string { return []string{target} }

	switch goos {
	case "darwin":
		return []command{{name: "open", args: plain}}
	case "windows":
		return []command{{
			name: "rundll32",
			args: func(target string) []string {
				return []string{"url.dll,FileProtocolHandler", target}
			},
		}}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []command{
			{name: "xdg-open", args: plain},
			{name: "sensible-browser", args: plain},
			{name: "firefox", args: plain},
		}
	default:
		return nil
	}
}

// Ensure Opener implements ports.BrowserOpener
var _ ports.BrowserOpener = (*Opener)(nil)
