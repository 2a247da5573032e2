package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Render.Engine != "fdp" || cfg.Cache.Backend != CacheFile || cfg.Store.Backend != StoreMemory {
		t.Errorf("Default() = %+v", cfg)
	}
	if cfg.Cache.TTL.Duration != 7*24*time.Hour {
		t.Errorf("TTL = %v", cfg.Cache.TTL)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[render]
engine = "neato"
detailed = true

[server]
addr = ":9999"

[cache]
backend = "none"
ttl = "90m"

[convert]
strict_members = true
`)

	t.Setenv("EGGSPOSITION_ADDR", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Engine != "neato" || !cfg.Render.Detailed {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Server.Addr != ":9999" || cfg.Server.MaxUploadBytes != 10<<20 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Cache.Backend != CacheNone || cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if !cfg.Convert.StrictMembers {
		t.Error("strict_members not loaded")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"UnknownKey", "[render]\ncolour = \"red\"\n", "unknown keys"},
		{"BadTOML", "[render\n", "parse"},
		{"BadEngine", "[render]\nengine = \"osage\"\n", "unknown layout engine"},
		{"BadTTL", "[cache]\nttl = \"soon\"\n", "parse"},
		{"RedisWithoutURL", "[cache]\nbackend = \"redis\"\n", "redis_url"},
		{"MongoWithoutURI", "[store]\nbackend = \"mongo\"\n", "mongo_uri"},
		{"UnknownStore", "[store]\nbackend = \"s3\"\n", "unknown store backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".toml", tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("explicit missing file should fail")
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if cfg.Server.Addr == "" {
		t.Error("defaults not applied")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join("/tmp/xdg", "eggsposition", "config.toml") {
		t.Errorf("DefaultPath() = %s", p)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"EGGSPOSITION_ADDR":             "127.0.0.1:1",
		"EGGSPOSITION_ENGINE":           "sfdp",
		"EGGSPOSITION_CACHE":            "redis",
		"EGGSPOSITION_REDIS_URL":        "redis://r:6379/0",
		"EGGSPOSITION_STORE":            "mongo",
		"EGGSPOSITION_MONGO_URI":        "mongodb://m:27017",
		"EGGSPOSITION_MONGO_DB":         "graphs",
		"EGGSPOSITION_STRICT_MEMBERS":   "true",
		"EGGSPOSITION_MAX_UPLOAD_BYTES": "2048",
	}
	cfg := Default()
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:1" || cfg.Render.Engine != "sfdp" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisURL != "redis://r:6379/0" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Store.Backend != StoreMongo || cfg.Store.MongoDatabase != "graphs" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if !cfg.Convert.StrictMembers || cfg.Server.MaxUploadBytes != 2048 {
		t.Errorf("convert/server = %+v %+v", cfg.Convert, cfg.Server)
	}

	bad := Default()
	err := bad.ApplyEnv(func(k string) (string, bool) {
		if k == "EGGSPOSITION_STRICT_MEMBERS" {
			return "maybe", true
		}
		return noEnv(k)
	})
	if err == nil {
		t.Error("invalid bool should fail")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "EGGSPOSITION_ENGINE=circo\nEGGSPOSITION_ADDR=:7000\n")

	t.Setenv("EGGSPOSITION_ADDR", ":1234")
	os.Unsetenv("EGGSPOSITION_ENGINE")
	t.Cleanup(func() { os.Unsetenv("EGGSPOSITION_ENGINE") })

	if err := LoadDotEnv(path, filepath.Join(dir, "absent.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("EGGSPOSITION_ENGINE"); got != "circo" {
		t.Errorf("EGGSPOSITION_ENGINE = %q, want circo", got)
	}
	if got := os.Getenv("EGGSPOSITION_ADDR"); got != ":1234" {
		t.Errorf("existing variable overridden: %q", got)
	}
}

func TestCacheDir(t *testing.T) {
	cfg := Default()
	t.Setenv("XDG_CACHE_HOME", "/tmp/cachehome")
	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/cachehome", "eggsposition") {
		t.Errorf("CacheDir() = %s", dir)
	}

	cfg.Cache.Dir = "/explicit"
	if dir, _ := cfg.CacheDir(); dir != "/explicit" {
		t.Errorf("CacheDir() = %s, want /explicit", dir)
	}
}
