package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		log, err := New(nil)
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			log, err := New(&Config{Level: level, Format: "json"})
			require.NoError(t, err)
			assert.NotNil(t, log)
		}
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		log, err := New(&Config{Level: "loud", Format: "json"})
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(0)) // InfoLevel
	})

	t.Run("console format", func(t *testing.T) {
		log, err := New(&Config{Level: "info", Format: "console"})
		require.NoError(t, err)
		assert.NotNil(t, log)
	})
}
