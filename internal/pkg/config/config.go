package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the process-wide immutable configuration. It is loaded once at
// startup from config.yaml; individual fields may then be overridden from
// environment variables or flags (namespace ATTENDANCE).
type Config struct {
	ServerPort string `yaml:"server_port"`
	BaseUrl    string `yaml:"base_url"`

	DBUsername string `yaml:"db_username"`
	DBPassword string `yaml:"db_password" conf:"noprint"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`
	DisableTLS bool   `yaml:"disable_tls"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password" conf:"noprint"`

	JWTKey string `yaml:"jwt_key" conf:"noprint"`

	// Decoded from yaml by UnmarshalYAML; yaml.v3 cannot read a duration
	// string into time.Duration directly.
	AccessTokenTTL  time.Duration `yaml:"-"`
	RefreshTokenTTL time.Duration `yaml:"-"`

	// Daily worked minutes beyond this count as overtime.
	OvertimeThresholdMinutes int `yaml:"overtime_threshold_minutes"`
}

// UnmarshalYAML decodes the config, accepting the token TTLs in
// time.ParseDuration notation ("1h", "24h").
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type alias Config
	aux := struct {
		Config          alias  `yaml:",inline"`
		AccessTokenTTL  string `yaml:"access_token_ttl"`
		RefreshTokenTTL string `yaml:"refresh_token_ttl"`
	}{Config: alias(*c)}

	if err := value.Decode(&aux); err != nil {
		return err
	}
	*c = Config(aux.Config)

	if aux.AccessTokenTTL != "" {
		d, err := time.ParseDuration(aux.AccessTokenTTL)
		if err != nil {
			return errors.Wrap(err, "parsing access_token_ttl")
		}
		c.AccessTokenTTL = d
	}
	if aux.RefreshTokenTTL != "" {
		d, err := time.ParseDuration(aux.RefreshTokenTTL)
		if err != nil {
			return errors.Wrap(err, "parsing refresh_token_ttl")
		}
		c.RefreshTokenTTL = d
	}

	return nil
}

func NewConfig() (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile("config.yaml")
	if err == nil {
		if err = yaml.Unmarshal(yamlFile, &c); err != nil {
			return nil, errors.Wrap(err, "parsing config.yaml")
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "reading config.yaml")
	}

	if err := conf.Parse(os.Args[1:], "ATTENDANCE", &c); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, uerr := conf.Usage("ATTENDANCE", &c)
			if uerr != nil {
				return nil, errors.Wrap(uerr, "generating usage")
			}
			fmt.Println(usage)
			os.Exit(0)
		}
		return nil, errors.Wrap(err, "parsing config overrides")
	}

	if c.ServerPort == "" {
		c.ServerPort = ":8080"
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = time.Hour
	}
	if c.RefreshTokenTTL == 0 {
		c.RefreshTokenTTL = 24 * time.Hour
	}
	if c.OvertimeThresholdMinutes == 0 {
		c.OvertimeThresholdMinutes = 500
	}

	if c.DBUsername == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}
	if c.JWTKey == "" {
		return nil, errors.New("missing jwt_key configuration")
	}

	return &c, nil
}
