package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "portal",
		Password: "pw",
		Name:     "sifms_portal",
		SSLMode:  "disable",
	})
	assert.Equal(t, "host=db port=5432 user=portal password=pw dbname=sifms_portal sslmode=disable", dsn)
}
