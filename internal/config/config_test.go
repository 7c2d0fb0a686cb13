package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
scoping: dynamic
skipCheck: true
maxDepth: 50
server:
  addr: "127.0.0.1:9000"
  timeout: 2s
`)
	cfg, err := ParseConfig(data, "minilang.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if !cfg.IsDynamic() {
		t.Errorf("scoping = %q, want dynamic", cfg.Scoping)
	}
	if !cfg.SkipCheck {
		t.Errorf("skipCheck not set")
	}
	if cfg.MaxDepth != 50 {
		t.Errorf("maxDepth = %d, want 50", cfg.MaxDepth)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("server.addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.Timeout != 2*time.Second {
		t.Errorf("server.timeout = %v, want 2s", cfg.Server.Timeout)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("{}"), "minilang.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Scoping != ScopingStatic || cfg.IsDynamic() {
		t.Errorf("scoping = %q, want static", cfg.Scoping)
	}
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("maxDepth = %d, want %d", cfg.MaxDepth, DefaultMaxDepth)
	}
	if cfg.Server.Addr != DefaultServerAddr || cfg.Server.Timeout != DefaultServerTimeout {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad scoping", "scoping: lexical", "scoping must be"},
		{"negative depth", "maxDepth: -1", "maxDepth"},
		{"bad yaml", "scoping: [", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data), "minilang.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, "minilang.yaml")
	if err := os.WriteFile(cfgPath, []byte("scoping: static\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	if got != cfgPath {
		t.Errorf("FindConfig = %q, want %q", got, cfgPath)
	}

	cfg, err := LoadConfig(got)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Scoping != ScopingStatic {
		t.Errorf("scoping = %q", cfg.Scoping)
	}
}
