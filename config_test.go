package convex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akmonengine/convex/hull"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Config
		wantErr bool
	}{
		{
			name: "empty document keeps the defaults",
			yaml: "",
			want: DefaultConfig(),
		},
		{
			name: "overrides",
			yaml: "workers: 4\ndebug: true\nlog_prefix: scene\nhull:\n  partition: first\n",
			want: func() Config {
				cfg := DefaultConfig()
				cfg.Workers = 4
				cfg.Debug = true
				cfg.LogPrefix = "scene"
				cfg.Hull.Partition = hull.PartitionFirst
				return cfg
			}(),
		},
		{name: "negative workers", yaml: "workers: -1\n", wantErr: true},
		{name: "invalid hull", yaml: "hull:\n  initial_epsilon: 0\n", wantErr: true},
		{name: "malformed", yaml: "workers: [\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig([]byte(tt.yaml))
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected an error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseConfig() = %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detector.yaml")
	if err := os.WriteFile(path, []byte("workers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Expected 2 workers, got %d", cfg.Workers)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Expected an error for a missing file")
	}
}
