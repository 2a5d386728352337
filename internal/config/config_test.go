package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 8090

[database]
host = "localhost"
port = 5432
user = "postgres"
password = "postgres"
dbname = "smc_availability"

[logs]
level = "debug"

[ratelimit]
enabled = false

[availability]
max_parallel = 4

[quota]
default_plan = "basic"

[[quota.plans]]
id = "basic"
limit = 100

[[quota.plans]]
id = "pro"
limit = 1000

[[quota.plans]]
id = "enterprise"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	// .env ищется в рабочей директории
	t.Chdir(dir)
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))

	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, 4, cfg.Availability.MaxParallel)
	assert.Equal(t, "booking.status_changed", cfg.Kafka.Topic)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=smc_availability sslmode=disable",
		cfg.Database.DSN())

	plans, err := cfg.Quota.BuildPlans()
	require.NoError(t, err)
	assert.Equal(t, "basic", plans.Default().ID)
	assert.Equal(t, 100, *plans.Default().Limit)
	enterprise, ok := plans.Lookup("enterprise")
	require.True(t, ok)
	assert.True(t, enterprise.Unbounded())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, sample)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "k1:9092,k2:9092", cfg.Kafka.Brokers)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := writeConfig(t, sample)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), ".env"), []byte("REDIS_ADDR=redis:6379\n"), 0o600))
	t.Setenv("REDIS_ADDR", "")
	require.NoError(t, os.Unsetenv("REDIS_ADDR"))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[server]\nhttp_port = 8080\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaults()
		cfg.Database.Host = "localhost"
		cfg.Database.DBName = "db"
		cfg.Quota.DefaultPlan = "basic"
		cfg.Quota.Plans = []PlanConfig{{ID: "basic"}}
		return cfg
	}
	require.NoError(t, valid().Validate())

	for name, mutate := range map[string]func(c *Config){
		"port":                func(c *Config) { c.Server.HTTPPort = 0 },
		"ratelimit w/o redis": func(c *Config) { c.RateLimit.Enabled = true },
		"kafka w/o brokers":   func(c *Config) { c.Kafka.Enabled = true },
		"unknown default":     func(c *Config) { c.Quota.DefaultPlan = "gold" },
		"negative parallel":   func(c *Config) { c.Availability.MaxParallel = -1 },
	} {
		cfg := valid()
		mutate(cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, name)
	}
}
