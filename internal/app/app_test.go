package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sutram/service-registry/internal/infrastructure/config"
	"github.com/sutram/service-registry/pkg/logger"
)

func TestNew_ServicesLogThroughProcessLogger(t *testing.T) {
	logger.Reset()
	t.Cleanup(logger.Reset)

	var buf bytes.Buffer
	logger.Init(logger.Options{Level: "info", Output: &buf})

	cfg := &config.Config{
		Paths: config.PathsConfig{DataDir: t.TempDir(), DBFile: "sutram.db"},
	}
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	// An empty table makes bootstrap seed the default administrator.
	require.Contains(t, buf.String(), `"component":"auth"`)
	require.Contains(t, buf.String(), "seeded default administrator")
}
