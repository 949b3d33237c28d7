package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unishare/internal/config"
	"github.com/yigit/unishare/internal/pkg/logger"
)

func TestCorsConfig(t *testing.T) {
	restricted := corsConfig([]string{"https://unishare.app", "http://localhost:3000"})
	assert.False(t, restricted.AllowAllOrigins)
	assert.Equal(t, []string{"https://unishare.app", "http://localhost:3000"}, restricted.AllowOrigins)
	assert.Contains(t, restricted.AllowHeaders, "Authorization")
	assert.Contains(t, restricted.ExposeHeaders, "X-Request-ID")
	require.NoError(t, restricted.Validate())

	for _, origins := range [][]string{nil, {"*"}, {"https://unishare.app", "*"}} {
		open := corsConfig(origins)
		assert.True(t, open.AllowAllOrigins)
		assert.Empty(t, open.AllowOrigins)
		assert.NoError(t, open.Validate())
	}
}

func TestSetupPageCache_FallsBackToNoop(t *testing.T) {
	cfg := &config.Config{}
	lgr := logger.Get()

	disabled := SetupPageCache(cfg, lgr)
	_, hit := disabled.Get(context.Background(), "any")
	assert.False(t, hit)

	cfg.Redis.Enabled = true
	cfg.Redis.URL = "redis://127.0.0.1:1/0"
	unreachable := SetupPageCache(cfg, lgr)
	require.NoError(t, unreachable.Set(context.Background(), "k", []byte("v")))
	_, hit = unreachable.Get(context.Background(), "k")
	assert.False(t, hit)
}
