// Package config loads process configuration from the environment and an
// optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/omaralmansoori/connectfour/alphabeta"
	"github.com/omaralmansoori/connectfour/board"
)

type Config struct {
	// SearchDepth is the AI's default search depth in plies.
	SearchDepth int `mapstructure:"search-depth"`
	// MoveOrdering is "ascending" or "center-first".
	MoveOrdering string `mapstructure:"move-ordering"`
	Rows         int    `mapstructure:"rows"`
	Cols         int    `mapstructure:"cols"`
	// LogLevel is a zerolog level name (debug, info, ...).
	LogLevel string `mapstructure:"log-level"`
}

// Load reads configuration from CONNECTFOUR_* environment variables and,
// if present, a connectfour.yaml file in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("search-depth", 4)
	v.SetDefault("move-ordering", "ascending")
	v.SetDefault("rows", board.DefaultRows)
	v.SetDefault("cols", board.DefaultCols)
	v.SetDefault("log-level", "info")

	v.SetEnvPrefix("connectfour")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// viper only consults the env for keys it knows about; binding them
	// explicitly makes AutomaticEnv work without a config file.
	for _, key := range []string{"search-depth", "move-ordering", "rows", "cols", "log-level"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetConfigName("connectfour")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.SearchDepth < 1 {
		return fmt.Errorf("search-depth %d: must be at least 1", c.SearchDepth)
	}
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("board dimensions %dx%d: must be positive", c.Rows, c.Cols)
	}
	if _, err := alphabeta.OrderingFromName(c.MoveOrdering); err != nil {
		return err
	}
	return nil
}

// Ordering returns the parsed move ordering policy.
func (c *Config) Ordering() alphabeta.MoveOrdering {
	o, _ := alphabeta.OrderingFromName(c.MoveOrdering)
	return o
}
