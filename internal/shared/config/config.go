package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Queue         QueueConfig         `mapstructure:"queue"`
	Mail          MailConfig          `mapstructure:"mail"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Collaboration CollaborationConfig `mapstructure:"collaboration"`
	Log           LogConfig           `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// QueueConfig holds SQS configuration for the todo-sharing queue.
type QueueConfig struct {
	Region          string        `mapstructure:"region"`
	Endpoint        string        `mapstructure:"endpoint"` // optional, for localstack
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	SharingQueueURL string        `mapstructure:"sharing_queue_url"`
	WaitTime        time.Duration `mapstructure:"wait_time"`
	Visibility      time.Duration `mapstructure:"visibility"`
	Workers         int           `mapstructure:"workers"`
}

// MailConfig holds SMTP configuration.
type MailConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	FromAddress string `mapstructure:"from_address"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_token_expiry"`
	InvitationCodes   []string      `mapstructure:"invitation_codes"`
}

// CollaborationConfig holds todo-sharing configuration.
type CollaborationConfig struct {
	// ExternalURL is the base URL used to build confirmation links.
	ExternalURL string `mapstructure:"external_url"`
	// AutoConfirm confirms collaborations without a second user.
	// Local development only.
	AutoConfirm      bool          `mapstructure:"auto_confirm"`
	AutoConfirmDelay time.Duration `mapstructure:"auto_confirm_delay"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/todoapp")

	// Set defaults
	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults and env
	}

	// Read from environment variables
	v.SetEnvPrefix("TODOAPP")
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Override with environment variables for sensitive values
	if secret := os.Getenv("TODOAPP_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if password := os.Getenv("TODOAPP_DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if password := os.Getenv("TODOAPP_REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if password := os.Getenv("TODOAPP_MAIL_PASSWORD"); password != "" {
		cfg.Mail.Password = password
	}
	if key := os.Getenv("TODOAPP_QUEUE_SECRET_KEY"); key != "" {
		cfg.Queue.SecretAccessKey = key
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.database", "todoapp")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)

	// Redis defaults
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	// Queue defaults
	v.SetDefault("queue.region", "eu-central-1")
	v.SetDefault("queue.wait_time", 20*time.Second)
	v.SetDefault("queue.visibility", 30*time.Second)
	v.SetDefault("queue.workers", 1)

	// Mail defaults
	v.SetDefault("mail.host", "localhost")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from_address", "noreply@todoapp.io")

	// Auth defaults
	v.SetDefault("auth.access_token_expiry", 15*time.Minute)

	// Collaboration defaults
	v.SetDefault("collaboration.external_url", "http://localhost:8080")
	v.SetDefault("collaboration.auto_confirm", false)
	v.SetDefault("collaboration.auto_confirm_delay", 2500*time.Millisecond)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
