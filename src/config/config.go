package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	Auth            AuthConfig           `mapstructure:"auth"`
	Secrets         SecretsConfig        `mapstructure:"secrets"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Brokers         BrokersConfig        `mapstructure:"brokers"`
	Scheduler       SchedulerConfig      `mapstructure:"scheduler"`
	Logging         LoggingConfig        `mapstructure:"logging"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type           ServiceType `mapstructure:"type"`
	Port           string      `mapstructure:"port"`
	AllowedOrigins []string    `mapstructure:"allowedOrigins"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

// DSN returns the connection string, building it from the parts when no
// explicit connection string is configured.
func (c SQLConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.Username, c.Password, c.Database, c.Port)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	TLS      bool   `mapstructure:"tls"`
}

// Enabled reports whether a Redis host is configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
}

type SecretsConfig struct {
	Region         string `mapstructure:"region"`
	BrokerSecretID string `mapstructure:"brokerSecretId"`
	Endpoint       string `mapstructure:"endpoint"`
}

type ExternalClientConfig struct {
	Zerodha    ZerodhaConfig     `mapstructure:"zerodha"`
	HDFC       HDFCConfig        `mapstructure:"hdfc"`
	ICICI      PasswordAPIConfig `mapstructure:"icici"`
	FundsIndia PasswordAPIConfig `mapstructure:"fundsindia"`
}

type ZerodhaConfig struct {
	BaseURL   string `mapstructure:"baseUrl"`
	LoginURL  string `mapstructure:"loginUrl"`
	APIKey    string `mapstructure:"apiKey"`
	APISecret string `mapstructure:"apiSecret"`
}

type HDFCConfig struct {
	BaseURL   string `mapstructure:"baseUrl"`
	APIKey    string `mapstructure:"apiKey"`
	APISecret string `mapstructure:"apiSecret"`
}

// PasswordAPIConfig describes brokers that issue bearer tokens through a
// password grant.
type PasswordAPIConfig struct {
	BaseURL  string `mapstructure:"baseUrl"`
	TokenURL string `mapstructure:"tokenUrl"`
	ClientID string `mapstructure:"clientId"`
}

type BrokersConfig struct {
	SessionTTLHours int                   `mapstructure:"sessionTtlHours"`
	Mappings        []BrokerMappingConfig `mapstructure:"mappings"`
}

// BrokerMappingConfig assigns the holdings of one asset class at a broker to a
// family member.
type BrokerMappingConfig struct {
	Broker     string `mapstructure:"broker"`
	MemberID   string `mapstructure:"memberId"`
	AssetClass string `mapstructure:"assetClass"`
}

type SchedulerConfig struct {
	SyncCron         string   `mapstructure:"syncCron"`
	ReminderCron     string   `mapstructure:"reminderCron"`
	UserIDs          []string `mapstructure:"userIds"`
	ReminderLeadDays int      `mapstructure:"reminderLeadDays"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	ToFile   bool   `mapstructure:"toFile"`
	FilePath string `mapstructure:"filePath"`
}

// LoadConfig reads appsettings.yaml from path and, when env is set, merges
// appsettings.<env>.yaml on top. Environment variables override both, with
// dots replaced by underscores (DATABASES_SQL_HOST).
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	// A missing .env is fine; it only exists on developer machines.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}
	if env != "" {
		v.SetConfigName("appsettings." + env)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to merge %s settings: %w", env, err)
		}
	}
	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8000")
	v.SetDefault("brokers.sessionTtlHours", 8)
	v.SetDefault("scheduler.reminderLeadDays", 30)
	v.SetDefault("logging.level", "info")
	v.SetDefault("externalClients.zerodha.baseUrl", "https://api.kite.trade")
	v.SetDefault("externalClients.zerodha.loginUrl", "https://kite.zerodha.com/connect/login")
	v.SetDefault("externalClients.hdfc.baseUrl", "https://developer.hdfcsec.com/oapi/v1")
}
