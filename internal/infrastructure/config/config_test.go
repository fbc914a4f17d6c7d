package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	c, err := LoadFrom(map[string]string{"AUTH_JWT_SECRET": "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, 8080, c.HTTP.Port)
	assert.Equal(t, StorageDynamoDB, c.Storage)
	assert.Equal(t, "service_orders", c.DynamoDB.ServiceOrdersTable)
	assert.Equal(t, "counters", c.DynamoDB.CountersTable)
	assert.Equal(t, "service-orders.update-status", c.Auth.UpdateStatusPermission)
	assert.Equal(t, 30*time.Second, c.Auth.RoleCacheTTL)
	assert.Equal(t, 100, c.Notify.QueueSize)
	assert.False(t, c.SMTPEnabled())
}

func TestLoadFrom_Overrides(t *testing.T) {
	c, err := LoadFrom(map[string]string{
		"AUTH_JWT_SECRET":          "s3cret",
		"PORT":                     "9090",
		"STORAGE_DRIVER":           "Memory",
		"LOG_FORMAT":               "text",
		"ROLE_CACHE_TTL":           "0s",
		"PERMISSION_UPDATE_STATUS": "service-orders.update",
		"SMTP_HOST":                "smtp.tsmit.com.br",
		"NOTIFY_TIMEOUT":           "2s",
	})
	require.NoError(t, err)

	assert.Equal(t, 9090, c.HTTP.Port)
	assert.Equal(t, StorageMemory, c.Storage)
	assert.Equal(t, time.Duration(0), c.Auth.RoleCacheTTL)
	assert.Equal(t, "service-orders.update", c.Auth.UpdateStatusPermission)
	assert.True(t, c.SMTPEnabled())
	assert.Equal(t, 2*time.Second, c.Notify.Timeout)
}

func TestLoadFrom_Invalid(t *testing.T) {
	_, err := LoadFrom(map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")

	_, err = LoadFrom(map[string]string{"AUTH_JWT_SECRET": "x", "STORAGE_DRIVER": "postgres", "LOG_FORMAT": "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
	assert.Contains(t, err.Error(), "LOG_FORMAT")

	_, err = LoadFrom(map[string]string{"AUTH_JWT_SECRET": "x", "PORT": "abc"})
	assert.Error(t, err)
}
