// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

type HTTPOptions struct {
	Port    int    `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`
}

type LogOptions struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type DynamoDBOptions struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	Endpoint        string `env:"DYNAMODB_ENDPOINT"`

	ServiceOrdersTable string `env:"SERVICE_ORDERS_TABLE" envDefault:"service_orders"`
	StatusesTable      string `env:"STATUSES_TABLE" envDefault:"statuses"`
	RolesTable         string `env:"ROLES_TABLE" envDefault:"roles"`
	UsersTable         string `env:"USERS_TABLE" envDefault:"users"`
	ClientsTable       string `env:"CLIENTS_TABLE" envDefault:"clients"`
	ServicesTable      string `env:"SERVICES_TABLE" envDefault:"services"`
	CountersTable      string `env:"COUNTERS_TABLE" envDefault:"counters"`
}

type AuthOptions struct {
	JWTSecret              string        `env:"AUTH_JWT_SECRET"`
	JWTIssuer              string        `env:"AUTH_JWT_ISSUER"`
	UpdateStatusPermission string        `env:"PERMISSION_UPDATE_STATUS" envDefault:"service-orders.update-status"`
	RoleCacheTTL           time.Duration `env:"ROLE_CACHE_TTL" envDefault:"30s"`
	RoleCacheSize          int           `env:"ROLE_CACHE_SIZE" envDefault:"256"`
}

type SMTPOptions struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM" envDefault:"no-reply@tsmit.com.br"`
}

type NotifyOptions struct {
	QueueSize int           `env:"NOTIFY_QUEUE_SIZE" envDefault:"100"`
	Timeout   time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`
}

type BootstrapOptions struct {
	AdminID    string `env:"BOOTSTRAP_ADMIN_ID"`
	AdminName  string `env:"BOOTSTRAP_ADMIN_NAME" envDefault:"Administrador"`
	AdminEmail string `env:"BOOTSTRAP_ADMIN_EMAIL"`
}

type Configuration struct {
	HTTP      HTTPOptions
	Log       LogOptions
	Storage   string `env:"STORAGE_DRIVER" envDefault:"dynamodb"`
	DynamoDB  DynamoDBOptions
	Auth      AuthOptions
	SMTP      SMTPOptions
	Notify    NotifyOptions
	Bootstrap BootstrapOptions
}

// Load parses the process environment.
func Load() (*Configuration, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (*Configuration, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Configuration, error) {
	c := &Configuration{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Configuration) Validate() error {
	var errs []error
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	if c.Storage != StorageDynamoDB && c.Storage != StorageMemory {
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDynamoDB, StorageMemory, c.Storage))
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required"))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format))
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.HTTP.Port))
	}
	if c.Notify.QueueSize < 0 {
		errs = append(errs, fmt.Errorf("NOTIFY_QUEUE_SIZE must be non-negative, got %d", c.Notify.QueueSize))
	}
	if c.Auth.RoleCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("ROLE_CACHE_TTL must be non-negative, got %s", c.Auth.RoleCacheTTL))
	}
	return errors.Join(errs...)
}

// SMTPEnabled reports whether an SMTP relay is configured.
func (c *Configuration) SMTPEnabled() bool {
	return strings.TrimSpace(c.SMTP.Host) != ""
}
