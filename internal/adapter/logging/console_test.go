package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		log       func(l *ConsoleLogger)
		wantEmpty bool
		contains  []string
	}{
		{
			name:     "info with key values",
			level:    "info",
			log:      func(l *ConsoleLogger) { l.Info("job created", "jobId", "j-1") },
			contains: []string{"job created", "jobId", "j-1"},
		},
		{
			name:      "debug filtered at info",
			level:     "info",
			log:       func(l *ConsoleLogger) { l.Debug("noise") },
			wantEmpty: true,
		},
		{
			name:     "debug enabled",
			level:    "debug",
			log:      func(l *ConsoleLogger) { l.Debug("details", "n", 3) },
			contains: []string{"details"},
		},
		{
			name:      "warn filtered at error",
			level:     "error",
			log:       func(l *ConsoleLogger) { l.Warn("careful") },
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewConsoleLogger(&buf, tt.level))

			if tt.wantEmpty {
				assert.Empty(t, buf.String())
				return
			}
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestNew_PicksFormat(t *testing.T) {
	var buf bytes.Buffer
	_, isConsole := New("console", "info", &buf).(*ConsoleLogger)
	assert.True(t, isConsole)

	_, isZap := New("json", "info", &buf).(*ZapLogger)
	assert.True(t, isZap)
}
