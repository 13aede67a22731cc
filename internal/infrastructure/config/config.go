package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

// Config is the full environment-driven configuration surface. The credential
// table and category limits are static for the process lifetime; changing
// them is a restart, never a code change.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret     string `env:"JWT_SECRET, default=change-me"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS, default=24"`

	// Store selects the ledger/directory backend: "memory" (volatile,
	// reference behavior) or "mongo".
	Store string `env:"STORE, default=memory"`
	// LockoutStore selects the brute-force counter backend: "memory" or "redis".
	LockoutStore string `env:"LOCKOUT_STORE, default=memory"`

	// RoleSecrets overrides entries of the shared-secret table, formatted
	// "role:secret,role:secret". Unlisted roles keep their defaults.
	RoleSecrets   map[string]string `env:"ROLE_SECRETS"`
	ArchiveSecret string            `env:"ARCHIVE_SECRET, default=202505"`

	// CategoryLimits overrides per-category caps, formatted "category:limit".
	CategoryLimits map[string]int `env:"CATEGORY_LIMITS"`

	// SeedUsers are created at startup, formatted "username:role". The two
	// privileged identities are always seeded.
	SeedUsers map[string]string `env:"SEED_USERS"`

	NikitovskyUsername string `env:"NIKITOVSKY_USERNAME, default=nikitovsky"`
	SuperAdminUsername string `env:"SUPER_ADMIN_USERNAME, default=superadmin"`

	DispatcherWorkers int `env:"DISPATCHER_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=deposit_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// defaultRoleSecrets is the credential table shipped with the system.
var defaultRoleSecrets = map[domain.Role]string{
	domain.RoleClient:      "52",
	domain.RoleCashier:     "25",
	domain.RoleHeadCashier: "202520",
	domain.RoleAdmin:       "2025",
	domain.RoleCreator:     "202505",
	domain.RoleNikitovsky:  "20252025",
	domain.RoleSuperAdmin:  "25202520",
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Credentials merges the default secret table with any overrides.
func (c *Config) Credentials() domain.Credentials {
	secrets := make(map[domain.Role]string, len(defaultRoleSecrets))
	for role, secret := range defaultRoleSecrets {
		secrets[role] = secret
	}
	for role, secret := range c.RoleSecrets {
		secrets[domain.Role(role)] = secret
	}
	return domain.Credentials{RoleSecrets: secrets, ArchiveSecret: c.ArchiveSecret}
}

// Limits merges the default category limits with any overrides.
func (c *Config) Limits() map[domain.Category]int {
	limits := make(map[domain.Category]int, len(domain.DefaultCategoryLimits))
	for cat, limit := range domain.DefaultCategoryLimits {
		limits[cat] = limit
	}
	for cat, limit := range c.CategoryLimits {
		limits[domain.Category(cat)] = limit
	}
	return limits
}
