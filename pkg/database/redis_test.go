package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/exam-session-api/internal/config"
)

func TestRedisAddrs(t *testing.T) {
	assert.Nil(t, redisAddrs(config.RedisConfig{}))
	assert.Equal(t, []string{"a:6379"}, redisAddrs(config.RedisConfig{Addr: "a:6379"}))
	assert.Equal(t, []string{"b:6379", "c:6379"},
		redisAddrs(config.RedisConfig{Addr: "a:6379", Addrs: []string{"b:6379", "c:6379"}}),
		"Addrs важнее Addr")
}

func TestNewUniversalRedisClient_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.RedisConfig
	}{
		{"no address", config.RedisConfig{Mode: "single"}},
		{"sentinel without master", config.RedisConfig{Mode: "sentinel", Addr: "localhost:26379"}},
		{"unknown mode", config.RedisConfig{Mode: "ring", Addr: "localhost:6379"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewUniversalRedisClient(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, client)
		})
	}
}
