package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Demo configures cmd/kdtree-demo.
type Demo struct {
	Dimensions int  `envconfig:"KDTREE_DIMENSIONS" default:"3"`
	Points     int  `envconfig:"KDTREE_POINTS" default:"1000"`
	Debug      bool `envconfig:"KDTREE_DEBUG" default:"false"`
	Dev        bool `envconfig:"KDTREE_DEV_LOG" default:"true"`
}

// Bench configures cmd/kdtree-bench.
type Bench struct {
	Dimensions int  `envconfig:"KDTREE_DIMENSIONS" default:"3"`
	Points     int  `envconfig:"KDTREE_POINTS" default:"100000"`
	Queries    int  `envconfig:"KDTREE_QUERIES" default:"10000"`
	Workers    int  `envconfig:"KDTREE_WORKERS" default:"8"`
	SlowTop    uint `envconfig:"KDTREE_SLOW_TOP" default:"10"`
	Dev        bool `envconfig:"KDTREE_DEV_LOG" default:"true"`
}

// Load reads environment variables into cfg, which must be a pointer to
// a Demo or Bench (or any struct tagged for envconfig).
func Load(cfg interface{}) error {
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}
	return nil
}
