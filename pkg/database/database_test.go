package database

import (
	"testing"

	"go-catalog-admin/pkg/config"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "url wins",
			cfg:  config.DatabaseConfig{Driver: "postgres", URL: "postgres://u:p@db/catalog", Host: "ignored"},
			want: "postgres://u:p@db/catalog",
		},
		{
			name: "postgres default port",
			cfg:  config.DatabaseConfig{Driver: "postgres", Host: "db", User: "u", Password: "p", Name: "catalog", SSLMode: "disable"},
			want: "host=db user=u password=p dbname=catalog port=5432 sslmode=disable",
		},
		{
			name: "mysql",
			cfg:  config.DatabaseConfig{Driver: "mysql", Host: "db", Port: "3307", User: "u", Password: "p", Name: "catalog"},
			want: "u:p@tcp(db:3307)/catalog?charset=utf8mb4&parseTime=True&loc=Local",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DSN(tt.cfg))
		})
	}
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel("silent"))
	assert.Equal(t, logger.Info, logLevel("info"))
	assert.Equal(t, logger.Warn, logLevel("whatever"))
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := dialector(config.DatabaseConfig{Driver: "sqlite"})
	assert.Error(t, err)
}
