package watch

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Clipboard copies text to the user's clipboard.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard targets the real clipboard. Remote and GNU screen sessions
// go through OSC 52 escape sequences, which terminal emulators translate into
// a clipboard write on the near end; everything else uses the native tool.
type SystemClipboard struct{}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	if isLocalTmux() {
		return copyViaNative(text)
	}
	if isRemoteSession() || isGNUScreen() {
		return copyViaOSC52(text)
	}
	return copyViaNative(text)
}

// isLocalTmux reports tmux without SSH underneath.
func isLocalTmux() bool {
	return os.Getenv("TMUX") != "" && !isRemoteSession()
}

func isRemoteSession() bool {
	return os.Getenv("SSH_TTY") != "" ||
		os.Getenv("SSH_CLIENT") != "" ||
		os.Getenv("SSH_CONNECTION") != ""
}

func isGNUScreen() bool {
	return os.Getenv("STY") != ""
}

// copyViaOSC52 writes an OSC 52 sequence to the controlling terminal. Inside
// tmux the sequence needs a DCS passthrough wrapper with the inner escape
// doubled, or tmux consumes it.
func copyViaOSC52(text string) (err error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))

	var seq string
	if os.Getenv("TMUX") != "" {
		seq = fmt.Sprintf("\x1bPtmux;\x1b\x1b]52;c;%s\x07\x1b\\", encoded)
	} else {
		seq = fmt.Sprintf("\x1b]52;c;%s\x07", encoded)
	}

	// /dev/tty bypasses the alternate screen and any stdout redirection.
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open /dev/tty: %w", err)
	}
	defer func() {
		if closeErr := tty.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = tty.WriteString(seq)
	return err
}

// copyViaNative pipes text into the platform clipboard tool.
func copyViaNative(text string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	default:
		cmd = exec.Command("xclip", "-selection", "clipboard")
	}

	pipe, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	if _, err := pipe.Write([]byte(text)); err != nil {
		return err
	}
	if err := pipe.Close(); err != nil {
		return err
	}
	return cmd.Wait()
}
