package termios

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// NewSettings requires an actual terminal device; exercising Raw/Reset
// against a real TTY isn't available in a test runner, so this only checks
// the ioctl's error path against a file descriptor that is provably not a
// terminal (matching the teacher's own term_test.go, which likewise could
// only probe error paths without a live pty).
func TestNewSettingsRejectsNonTTY(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	assert.NoError(t, err)
	defer f.Close()

	_, err = NewSettings(int(f.Fd()))
	assert.Error(t, err)
}
