// Package speech captures a spoken request through an external
// speech-to-text command. Capture is optional: when no command is configured
// or it is not installed, the voice control is simply not offered.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/config"
)

// LangPlaceholder in an argument is replaced by the BCP 47 tag of the
// requested language.
const LangPlaceholder = "{lang}"

// Capturer records one utterance and returns its transcript, which may be
// empty when nothing was heard.
type Capturer interface {
	Capture(ctx context.Context, lang catalog.Language) (string, error)
}

type commandCapturer struct {
	path string
	args []string
}

// Detect returns a Capturer when cfg names a command found on PATH.
func Detect(cfg *config.SpeechConfig) (Capturer, bool) {
	if cfg == nil || strings.TrimSpace(cfg.Command) == "" {
		return nil, false
	}
	path, err := exec.LookPath(cfg.Command)
	if err != nil {
		return nil, false
	}
	return &commandCapturer{path: path, args: cfg.Args}, true
}

func (c *commandCapturer) Capture(ctx context.Context, lang catalog.Language) (string, error) {
	tag := lang.Tag().String()
	args := make([]string, len(c.args))
	for i, a := range c.args {
		args[i] = strings.ReplaceAll(a, LangPlaceholder, tag)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("speech capture: %w: %s", err, msg)
		}
		return "", fmt.Errorf("speech capture: %w", err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Append adds transcript to the end of prompt, separated by one space.
func Append(prompt, transcript string) string {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return prompt
	}
	trimmed := strings.TrimRight(prompt, " \t")
	if trimmed == "" {
		return transcript
	}
	if strings.HasSuffix(trimmed, "\n") {
		return trimmed + transcript
	}
	return trimmed + " " + transcript
}
