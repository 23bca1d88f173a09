package logging_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"orderrate/pkg/logging"
)

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestNewLoggerFromConfig(t *testing.T) {
	// Save and restore the original logger and level
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("writes JSON to a file", func(t *testing.T) {
		tmpfile, err := os.CreateTemp(t.TempDir(), "test-log-*.txt")
		assert.NoError(t, err)
		defer tmpfile.Close()

		cfg := &logging.Config{
			Level:  "debug",
			Format: "json",
			Output: tmpfile.Name(),
		}

		logger := logging.NewLoggerFromConfig(cfg)
		logger.Info().Str("category", "call_connect").Msg("matched records")

		content, err := os.ReadFile(tmpfile.Name())
		assert.NoError(t, err)
		assert.Contains(t, string(content), "matched records")
		assert.Contains(t, string(content), "call_connect")
	})

	t.Run("respects level filtering", func(t *testing.T) {
		tmpfile, err := os.CreateTemp(t.TempDir(), "test-log-*.txt")
		assert.NoError(t, err)
		defer tmpfile.Close()

		logging.Configure(&logging.Config{
			Level:  "warn",
			Format: "json",
			Output: tmpfile.Name(),
		})

		logging.Debug().Msg("debug message")
		logging.Info().Msg("info message")
		logging.Warn().Msg("warn message")
		logging.Error().Msg("error message")

		content, err := os.ReadFile(tmpfile.Name())
		assert.NoError(t, err)
		output := string(content)
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}

func TestNew(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	logger := logging.New(&buf)
	logger.Info().Int("models", 42).Msg("aggregated")

	assert.Contains(t, buf.String(), `"models":42`)
	assert.Contains(t, buf.String(), "aggregated")
}
