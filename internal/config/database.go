package config

import (
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// NewDatabaseConfig reads the database keys from v
func NewDatabaseConfig(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		URL:             v.GetString(DBURL),
		MaxOpenConns:    v.GetInt(DBMaxOpenConns),
		MaxIdleConns:    v.GetInt(DBMaxIdleConns),
		ConnMaxLifetime: v.GetDuration(DBConnMaxLifetime),
		AutoMigrate:     v.GetBool(DBAutoMigrate),
	}
}

// GetConnectionString returns the PostgreSQL connection string
func (c DatabaseConfig) GetConnectionString() string {
	return c.URL
}
