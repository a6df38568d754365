package config

import (
	"github.com/streamhub/rewards-service/pkg/envconfig"
)

type Config struct {
	Port    string `validate:"required"`
	Auth    AuthConfig
	Rewards RewardsConfig
}

type AuthConfig struct {
	Mode     string `validate:"required"`
	JWKSURL  string
	Audience string
	Issuer   string
}

type RewardsConfig struct {
	MonthlyGoal int `validate:"gt=0"`
	Capacity    int `validate:"gt=0"`
	// RefreshSchedule is a cron expression for the weekly-challenge refresh tick.
	RefreshSchedule string `validate:"required"`
}

func Load() (Config, error) {
	cfg := Config{
		Port: envconfig.Get("PORT", "8080"),
		Auth: AuthConfig{
			Mode:     envconfig.Get("AUTH_MODE", "noop"),
			JWKSURL:  envconfig.Get("AUTH_JWKS_URL", ""),
			Audience: envconfig.Get("AUTH_AUDIENCE", ""),
			Issuer:   envconfig.Get("AUTH_ISSUER", ""),
		},
		Rewards: RewardsConfig{
			MonthlyGoal:     envconfig.GetInt("MONTHLY_GOAL", 1000),
			Capacity:        envconfig.GetInt("REWARD_CAPACITY", 1000),
			RefreshSchedule: envconfig.Get("REFRESH_SCHEDULE", "@hourly"),
		},
	}
	return cfg, envconfig.Validate(cfg)
}
