package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database (required by the API and migrator, unused by the agent)
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Vision backend
	VisionProvider string `envconfig:"VISION_PROVIDER" default:"mock"`
	AWSRegion      string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Detection cadence and thresholds
	DetectionInterval   time.Duration `envconfig:"DETECTION_INTERVAL" default:"2s"`
	RefractoryWindow    time.Duration `envconfig:"REFRACTORY_WINDOW" default:"5s"`
	FaceAbsentThreshold time.Duration `envconfig:"FACE_ABSENT_THRESHOLD" default:"10s"`
	FocusLostThreshold  time.Duration `envconfig:"FOCUS_LOST_THRESHOLD" default:"5s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
