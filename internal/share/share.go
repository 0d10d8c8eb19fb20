// Package share hands a finished letter to other apps: the clipboard, the
// browser and WhatsApp.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

const whatsAppBase = "https://wa.me/?text="

// ErrClipboardUnsupported is returned when no clipboard utility is present.
var ErrClipboardUnsupported = errors.New("no clipboard available (install xclip, xsel or wl-clipboard)")

// WhatsAppURL builds a share link that opens WhatsApp with text prefilled.
// Spaces are encoded as %20, which every WhatsApp client accepts.
func WhatsAppURL(text string) string {
	return whatsAppBase + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// Copy puts text on the system clipboard.
func Copy(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// opener returns the command that opens a URL in the default browser.
func opener(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

// Open launches target in the default browser without waiting for it.
func Open(target string) error {
	name, args := opener(runtime.GOOS, target)
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("cannot open links here: %s not found", name)
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	go cmd.Wait()
	return nil
}
