package config

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestConfigYamlDurations(t *testing.T) {
	raw := []byte(`
server_port: ":9090"
db_username: "postgres"
access_token_ttl: 30m
refresh_token_ttl: 72h
`)

	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if c.ServerPort != ":9090" {
		t.Errorf("ServerPort = %q, want %q", c.ServerPort, ":9090")
	}
	if c.DBUsername != "postgres" {
		t.Errorf("DBUsername = %q, want %q", c.DBUsername, "postgres")
	}
	if c.AccessTokenTTL != 30*time.Minute {
		t.Errorf("AccessTokenTTL = %v, want %v", c.AccessTokenTTL, 30*time.Minute)
	}
	if c.RefreshTokenTTL != 72*time.Hour {
		t.Errorf("RefreshTokenTTL = %v, want %v", c.RefreshTokenTTL, 72*time.Hour)
	}
}

func TestConfigYamlRejectsBadDuration(t *testing.T) {
	raw := []byte(`access_token_ttl: "soon"`)

	var c Config
	if err := yaml.Unmarshal(raw, &c); err == nil {
		t.Fatal("expected an error for a malformed duration")
	}
}

func TestConfigYamlOmittedDurationsStayZero(t *testing.T) {
	raw := []byte(`server_port: ":8080"`)

	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.AccessTokenTTL != 0 || c.RefreshTokenTTL != 0 {
		t.Errorf("TTLs = %v/%v, want zero values", c.AccessTokenTTL, c.RefreshTokenTTL)
	}
}
