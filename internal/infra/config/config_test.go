package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.App.Name != "user-admin-console" {
		t.Fatalf("app name = %q", cfg.App.Name)
	}
	if cfg.Directory.MaxUsers != 50 {
		t.Fatalf("max users = %d", cfg.Directory.MaxUsers)
	}
	if !cfg.Seed.Enabled {
		t.Fatalf("seeding must default to enabled")
	}
	if cfg.Seed.Admin.Username != "admin" || cfg.Seed.Admin.Credential != "admin123" {
		t.Fatalf("unexpected admin seed: %+v", cfg.Seed.Admin)
	}
	if cfg.Seed.User.Username != "user1" || cfg.Seed.User.Credential != "user123" {
		t.Fatalf("unexpected user seed: %+v", cfg.Seed.User)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("UAC_DIRECTORY_MAX_USERS", "10")
	t.Setenv("UAC_SEED_ENABLED", "false")
	t.Setenv("UAC_APP_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Directory.MaxUsers != 10 {
		t.Fatalf("max users = %d", cfg.Directory.MaxUsers)
	}
	if cfg.Seed.Enabled {
		t.Fatalf("seeding must be disabled by env")
	}
	if cfg.App.Env != "production" {
		t.Fatalf("app env = %q", cfg.App.Env)
	}
}
