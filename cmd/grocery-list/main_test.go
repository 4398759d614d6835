package main

import (
	"net/http"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "generate", "show", "metrics-cleanup"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	days := metricsCleanupCmd.Flags().Lookup("days")
	require.NotNil(t, days)
	assert.Equal(t, "30", days.DefValue)
}

func TestFlagValidation(t *testing.T) {
	logger = zap.NewNop()

	recordID = 0
	assert.EqualError(t, runShow(&cobra.Command{}, nil), "--id must be a positive integer")

	cleanupDays = -1
	defer func() { cleanupDays = 30 }()
	assert.EqualError(t, runMetricsCleanup(&cobra.Command{}, nil), "--days must be a positive integer")
}

func TestNewHTTPServer(t *testing.T) {
	srv := newHTTPServer("9090", http.NotFoundHandler())
	assert.Equal(t, ":9090", srv.Addr)
	assert.NotZero(t, srv.ReadHeaderTimeout)
	assert.Greater(t, srv.WriteTimeout, srv.ReadTimeout)
}
