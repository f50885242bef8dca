package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App       AppSettings       `mapstructure:"app"`
	Directory DirectorySettings `mapstructure:"directory"`
	Seed      SeedSettings      `mapstructure:"seed"`
}

type AppSettings struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// DirectorySettings bounds the in-memory account directory.
type DirectorySettings struct {
	MaxUsers int `mapstructure:"max_users"`
}

// SeedSettings controls the demo accounts created at startup.
type SeedSettings struct {
	Enabled bool        `mapstructure:"enabled"`
	Admin   SeedAccount `mapstructure:"admin"`
	User    SeedAccount `mapstructure:"user"`
}

// SeedAccount describes one seeded account.
type SeedAccount struct {
	ID         string `mapstructure:"id"`
	FullName   string `mapstructure:"full_name"`
	Username   string `mapstructure:"username"`
	Credential string `mapstructure:"credential"`
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("UAC")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"directory.max_users",
		"seed.enabled",
		"seed.admin.id",
		"seed.admin.full_name",
		"seed.admin.username",
		"seed.admin.credential",
		"seed.user.id",
		"seed.user.full_name",
		"seed.user.username",
		"seed.user.credential",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "user-admin-console")
	v.SetDefault("app.env", "development")

	v.SetDefault("directory.max_users", 50)

	// Demo accounts matching the documented walkthrough.
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.admin.id", "admin")
	v.SetDefault("seed.admin.full_name", "System Administrator")
	v.SetDefault("seed.admin.username", "admin")
	v.SetDefault("seed.admin.credential", "admin123")
	v.SetDefault("seed.user.id", "user1")
	v.SetDefault("seed.user.full_name", "Standard User")
	v.SetDefault("seed.user.username", "user1")
	v.SetDefault("seed.user.credential", "user123")
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "UAC_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
