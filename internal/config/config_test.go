// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5432",
		User:     "buyx",
		Password: "s3cret",
		Database: "buyx",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5432 user=buyx dbname=buyx sslmode=require password=s3cret",
		cfg.DSN(),
	)
}

func TestDSNOmitsEmptyPassword(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Database: "buyx",
		SSLMode:  "disable",
	}

	assert.NotContains(t, cfg.DSN(), "password=")
}
