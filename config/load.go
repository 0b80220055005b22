package config

import (
	configUtil "github.com/fox-one/pkg/config"

	"github.com/christopherkarani/blend-client/core"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("BLEND")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	return nil
}
