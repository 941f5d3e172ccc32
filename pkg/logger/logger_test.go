package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		pretty bool
	}{
		{name: "info level", level: "info", pretty: false},
		{name: "debug level pretty", level: "debug", pretty: true},
		{name: "unknown level falls back to info", level: "loud", pretty: false},
		{name: "empty level", level: "", pretty: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New("cuvee-test", tt.level, tt.pretty)
			require.NoError(t, err)
			require.NotNil(t, log)

			assert.NotPanics(t, func() {
				log.WithField("check", tt.name).Debug("logger smoke test")
			})
		})
	}
}
