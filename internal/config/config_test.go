package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{Port: 0},
		Embedding: EmbeddingConfig{APIKey: "test-key"},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingEmbeddingKey(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding api key")
	}
}

func TestValidate_NegativeDimensions(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{Port: 8080},
		Embedding: EmbeddingConfig{APIKey: "test-key", Dimensions: -1},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative dimensions")
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{Port: 8080},
		Embedding: EmbeddingConfig{APIKey: "test-key"},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Index.Host != "localhost" {
		t.Errorf("expected Host=localhost, got %q", cfg.Index.Host)
	}
	if cfg.Index.Port != 6334 {
		t.Errorf("expected Port=6334, got %d", cfg.Index.Port)
	}
	if cfg.Index.Collection != "cine_match_v1" {
		t.Errorf("expected Collection=cine_match_v1, got %q", cfg.Index.Collection)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default model, got %q", cfg.Embedding.Model)
	}
	if cfg.Cache.EmbeddingTTLDays != 30 {
		t.Errorf("expected EmbeddingTTLDays=30, got %d", cfg.Cache.EmbeddingTTLDays)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Index:     IndexConfig{Host: "qdrant.internal", Port: 7000, Collection: "custom"},
		Embedding: EmbeddingConfig{Model: "text-embedding-3-large"},
		Cache:     CacheConfig{EmbeddingTTLDays: 7, ResultTTLSec: 60},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Index.Host != "qdrant.internal" || cfg.Index.Port != 7000 {
		t.Errorf("index settings overridden: %q:%d", cfg.Index.Host, cfg.Index.Port)
	}
	if cfg.Index.Collection != "custom" {
		t.Errorf("expected Collection=custom, got %q", cfg.Index.Collection)
	}
	if cfg.Embedding.Model != "text-embedding-3-large" {
		t.Errorf("expected model override kept, got %q", cfg.Embedding.Model)
	}
	if cfg.Cache.EmbeddingTTLDays != 7 || cfg.Cache.ResultTTLSec != 60 {
		t.Errorf("cache settings overridden: %d/%d", cfg.Cache.EmbeddingTTLDays, cfg.Cache.ResultTTLSec)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CINEMATCH_TEST_VAR", "secret")

	got := string(expandEnvVars([]byte("key: ${CINEMATCH_TEST_VAR}")))
	if got != "key: secret" {
		t.Errorf("unexpected expansion: %q", got)
	}

	got = string(expandEnvVars([]byte("port: ${CINEMATCH_UNSET_VAR:-6334}")))
	if got != "port: 6334" {
		t.Errorf("default not applied: %q", got)
	}

	got = string(expandEnvVars([]byte("empty: ${CINEMATCH_UNSET_VAR}")))
	if got != "empty: " {
		t.Errorf("unset var without default must expand empty: %q", got)
	}
}
