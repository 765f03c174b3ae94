package commands

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/ratelimit"
)

func TestNewLimiterPicksBackend(t *testing.T) {
	log, _ := test.NewNullLogger()

	limiter, closeFn := newLimiter(config.RedisConfig{}, log)
	assert.IsType(t, &ratelimit.MemoryLimiter{}, limiter)
	closeFn()

	limiter, closeFn = newLimiter(config.RedisConfig{Addr: "localhost:6379"}, log)
	assert.IsType(t, &ratelimit.RedisLimiter{}, limiter)
	closeFn()
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "seed-admin"} {
		assert.True(t, names[want], want)
	}
	assert.NotNil(t, serveCmd.Flags().Lookup("migrate"))
	assert.NotNil(t, seedAdminCmd.Flags().Lookup("email"))
}
