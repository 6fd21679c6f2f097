package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_ShouldNotWriteAfterStop(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "exporting", time.Millisecond, false)

	for i := 0; i < 3; i++ {
		s.Start()
		time.Sleep(10 * time.Millisecond)
		s.Stop()

		out := buf.String()
		assert.True(t, strings.HasSuffix(out, "\r\033[K"), "the line should be cleared last")

		time.Sleep(10 * time.Millisecond)
		assert.Equal(t, out, buf.String(), "no frame should follow Stop")
	}

	// Stopping an idle spinner is a no-op.
	s.Stop()
}
