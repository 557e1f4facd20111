package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Payment  PaymentConfig  `mapstructure:"payment"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"omitempty,gte=4,lte=31"`
}

// PaymentConfig contains the payment provider (Stripe) settings.
// PremiumPriceID is the provider-side price of the premium subscription.
type PaymentConfig struct {
	StripeSecretKey     string `mapstructure:"stripe_secret_key"     validate:"required"`
	StripeWebhookSecret string `mapstructure:"stripe_webhook_secret" validate:"required"`
	PremiumPriceID      string `mapstructure:"premium_price_id"      validate:"required"`
	CheckoutBaseURL     string `mapstructure:"checkout_base_url"     validate:"required,url"`
}
