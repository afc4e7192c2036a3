package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	LDAP     LDAPConfig     `yaml:"ldap"`
	Log      LogConfig      `yaml:"log"`
	Admin    AdminConfig    `yaml:"admin"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessExpireHour  int    `yaml:"access_expire_hour"`
	RefreshExpireHour int    `yaml:"refresh_expire_hour"`
}

type LDAPConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	BaseDN       string `yaml:"base_dn"`
	BindDN       string `yaml:"bind_dn"`
	BindPassword string `yaml:"bind_password"`
	UserFilter   string `yaml:"user_filter"`
	UseSSL       bool   `yaml:"use_ssl"`
}

type LogConfig struct {
	Level         string `yaml:"level"`
	RetentionDays int    `yaml:"retention_days"` // system_logs kept this long
}

// AdminConfig seeds the initial administrator account.
type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	FullName string `yaml:"full_name"`
}

// Load reads configPath (config.yaml by default), falling back to defaults
// when the file is missing, then applies environment overrides. The result
// is handed to the bootstrap explicitly; nothing here is global.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "planboard.db",
		},
		JWT: JWTConfig{
			Secret:            "planboard-secret-key-change-in-production",
			AccessExpireHour:  24,
			RefreshExpireHour: 24 * 7,
		},
		LDAP: LDAPConfig{
			Enabled:    false,
			Port:       389,
			UserFilter: "(mail=%s)",
		},
		Log: LogConfig{
			Level:         "info",
			RetentionDays: 30,
		},
		Admin: AdminConfig{
			Email:    "admin@example.com",
			Password: "admin123",
			FullName: "System Administrator",
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if hours := os.Getenv("JWT_ACCESS_EXPIRE_HOUR"); hours != "" {
		if h, err := strconv.Atoi(hours); err == nil && h > 0 {
			c.JWT.AccessExpireHour = h
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		c.Admin.Email = email
	}
	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		c.Admin.Password = password
	}
}
