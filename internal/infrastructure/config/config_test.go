package config

import (
	"context"
	"testing"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Store != "memory" || cfg.LockoutStore != "memory" {
		t.Fatalf("expected memory backends by default, got %s / %s", cfg.Store, cfg.LockoutStore)
	}
	if cfg.ArchiveSecret != "202505" {
		t.Fatalf("unexpected archive secret default: %s", cfg.ArchiveSecret)
	}
	if cfg.NikitovskyUsername != "nikitovsky" || cfg.SuperAdminUsername != "superadmin" {
		t.Fatalf("unexpected privileged usernames: %s / %s", cfg.NikitovskyUsername, cfg.SuperAdminUsername)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE", "mongo")
	t.Setenv("ROLE_SECRETS", "cashier:9999")
	t.Setenv("CATEGORY_LIMITS", "cards:5")
	t.Setenv("SEED_USERS", "petrova:cashier")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9090" || cfg.Store != "mongo" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.SeedUsers["petrova"] != "cashier" {
		t.Fatalf("seed users not parsed: %v", cfg.SeedUsers)
	}

	creds := cfg.Credentials()
	if secret, _ := creds.SecretFor(domain.RoleCashier); secret != "9999" {
		t.Fatalf("cashier secret override not applied: %s", secret)
	}
	// Unlisted roles keep their defaults.
	if secret, _ := creds.SecretFor(domain.RoleAdmin); secret != "2025" {
		t.Fatalf("admin secret default lost: %s", secret)
	}

	limits := cfg.Limits()
	if limits[domain.CategoryCards] != 5 {
		t.Fatalf("cards limit override not applied: %d", limits[domain.CategoryCards])
	}
	if limits[domain.CategoryOther] != 999 {
		t.Fatalf("other limit default lost: %d", limits[domain.CategoryOther])
	}
}

func TestCredentials_CoverAllRoles(t *testing.T) {
	creds := (&Config{}).Credentials()
	for _, role := range domain.Roles() {
		if _, ok := creds.SecretFor(role); !ok {
			t.Errorf("no default secret for role %s", role)
		}
	}
}
