package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Payment  PaymentConfig
	Gateways GatewaysConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// PaymentConfig contains payment-core configuration
type PaymentConfig struct {
	MerchantID         string
	MerchantName       string
	Currency           string // default currency for instruction payloads
	EntityCode         string // bank_reference entity code
	ReferenceLength    int    // bank_reference number length, 9-16 digits
	QRISPayeeKey       string // qr_instant payee key (email/phone/random key)
	StoreBackend       string // "memory" or "redis"
	RetentionMinutes   int    // terminal transaction retention after first read
	JanitorIntervalSec int
}

// GatewaysConfig contains per-gateway webhook verification secrets
type GatewaysConfig struct {
	MidtransServerKey   string
	XenditCallbackToken string
	DokuSecretKey       string
}

// NewRelicConfig contains New Relic agent configuration
type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int64
	MaxAge     int
	MaxBackups int
	Compress   bool
}
