package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfigDefaults verifies that every key has a usable default when no
// config file exists.
func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("server.address = %q, want %q", cfg.Server.Address, ":8080")
	}
	if cfg.Database.URI != "mongodb://localhost:27017" {
		t.Errorf("database.uri = %q, want default", cfg.Database.URI)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("openai.model = %q, want %q", cfg.OpenAI.Model, "gpt-4o")
	}
	if cfg.OpenAI.RequestTimeout != 30*time.Second {
		t.Errorf("openai.request_timeout = %v, want 30s", cfg.OpenAI.RequestTimeout)
	}
	if cfg.OpenAI.TotalTimeout != 300*time.Second {
		t.Errorf("openai.total_timeout = %v, want 300s", cfg.OpenAI.TotalTimeout)
	}
	if cfg.OpenAI.Temperature != 0.2 {
		t.Errorf("openai.temperature = %v, want 0.2", cfg.OpenAI.Temperature)
	}
	if cfg.JWT.Expiration != time.Hour {
		t.Errorf("jwt.expiration = %v, want 1h", cfg.JWT.Expiration)
	}
}

// TestLoadConfigFromEnv verifies that secrets with no file entry can be
// supplied by environment alone.
func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("S3_ACCESS_KEY_ID", "AKIA-env")
	t.Setenv("S3_BUCKET_NAME", "avatars-env")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OpenAI.APIKey != "sk-from-env" {
		t.Errorf("openai.api_key = %q, want %q", cfg.OpenAI.APIKey, "sk-from-env")
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("jwt.secret = %q, want %q", cfg.JWT.Secret, "env-secret")
	}
	if cfg.S3.AccessKeyID != "AKIA-env" {
		t.Errorf("s3.access_key_id = %q, want %q", cfg.S3.AccessKeyID, "AKIA-env")
	}
	if cfg.S3.BucketName != "avatars-env" {
		t.Errorf("s3.bucket_name = %q, want %q", cfg.S3.BucketName, "avatars-env")
	}
}

// TestLoadConfigFromFile verifies that file values override the defaults and
// that duration strings unmarshal into time.Duration fields.
func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
database:
  uri: "mongodb://db:27017"
  name: "endurafit_test"
openai:
  api_key: "sk-test"
  model: "gpt-4o-mini"
  request_timeout: "10s"
jwt:
  secret: "supersecret"
  expiration: "30m"
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Address != ":9090" {
		t.Errorf("server.address = %q, want %q", cfg.Server.Address, ":9090")
	}
	if cfg.Database.Name != "endurafit_test" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "endurafit_test")
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("openai.api_key = %q, want %q", cfg.OpenAI.APIKey, "sk-test")
	}
	if cfg.OpenAI.RequestTimeout != 10*time.Second {
		t.Errorf("openai.request_timeout = %v, want 10s", cfg.OpenAI.RequestTimeout)
	}
	if cfg.JWT.Expiration != 30*time.Minute {
		t.Errorf("jwt.expiration = %v, want 30m", cfg.JWT.Expiration)
	}
}
