package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	logger, cleanup, err := Init("DEBUG")
	require.NoError(t, err)
	defer cleanup()
	require.NotNil(t, logger)

	logger.Info("hello world", "key", "value")
	require.Contains(t, GlobalLogCapture.GetLastLine(), "hello world")
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"debug", "debug", "DEBUG"},
		{"warn upper", "WARN", "WARN"},
		{"error", "error", "ERROR"},
		{"unknown defaults info", "bogus", "INFO"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseLevel(tc.in)
			require.Equal(t, tc.want, strings.ToUpper(got.String()))
		})
	}
}
