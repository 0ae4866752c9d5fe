package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-initiative/internal/config"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestLoadDefaults() {
	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal(8080, cfg.HTTPPort)
	s.Equal(50051, cfg.GRPCPort)
	s.Equal("localhost:6379", cfg.RedisAddr)
	s.Equal("campaign.db", cfg.SQLitePath)
	s.Equal(30*time.Second, cfg.ShutdownTimeout)
	s.Empty(cfg.JWTSecret)
	s.NoError(cfg.Validate())
}

func (s *ConfigTestSuite) TestLoadFromEnv() {
	s.T().Setenv("RPG_INITIATIVE_HTTP_PORT", "9090")
	s.T().Setenv("RPG_INITIATIVE_REDIS_ADDR", "redis:6380")
	s.T().Setenv("RPG_INITIATIVE_LOG_FORMAT", "json")
	s.T().Setenv("RPG_INITIATIVE_JWT_SECRET", "shh")

	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal(9090, cfg.HTTPPort)
	s.Equal("redis:6380", cfg.RedisAddr)
	s.Equal("json", cfg.LogFormat)
	s.Equal("shh", cfg.JWTSecret)
	s.NotNil(cfg.Logger())
}

func (s *ConfigTestSuite) TestLoadRejectsMalformedValue() {
	s.T().Setenv("RPG_INITIATIVE_GRPC_PORT", "not-a-port")

	_, err := config.Load()
	s.Error(err)
}

func (s *ConfigTestSuite) TestValidate() {
	cfg := &config.Config{LogLevel: "loud", LogFormat: "xml"}

	err := cfg.Validate()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "HTTPPort")
	s.Contains(err.Error(), "RedisAddr")
	s.Contains(err.Error(), "LogLevel")
	s.Contains(err.Error(), "LogFormat")
}
