// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBSource          string        `mapstructure:"DB_SOURCE"`
	MigrationURL      string        `mapstructure:"MIGRATION_URL"`
	ServerAddress     string        `mapstructure:"SERVER_ADDRESS"`
	Environement      string        `mapstructure:"GO_ENV"`
	LedgerTimeZone    string        `mapstructure:"LEDGER_TIME_ZONE"`
	TxTimeout         time.Duration `mapstructure:"TX_TIMEOUT"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`

	location *time.Location
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("LEDGER_TIME_ZONE", "UTC")
	v.SetDefault("TX_TIMEOUT", 5*time.Second)

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	c.location, err = time.LoadLocation(c.LedgerTimeZone)
	if err != nil {
		return c, fmt.Errorf("invalid LEDGER_TIME_ZONE %q: %w", c.LedgerTimeZone, err)
	}

	return c, nil
}

// Location returns the time zone that defines calendar day boundaries of the ledger.
// UTC is used when the zone was never resolved.
func (c Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}

	return c.location
}
