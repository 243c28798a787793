package config

import (
	"fmt"
	"time"
)

type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %v", c.Timeout)
	}
	return nil
}
