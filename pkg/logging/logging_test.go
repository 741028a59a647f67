package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/chazu/hadesgeom/pkg/logging"
)

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stderr" {
		t.Errorf("DefaultConfig() = %+v, want info/console/stderr", cfg)
	}
}

func TestInitializeFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.log")
	err := logging.Initialize(logging.Config{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer func() {
		if err := logging.Initialize(logging.DefaultConfig()); err != nil {
			t.Fatalf("restoring default config: %v", err)
		}
	}()

	logging.Debug("component built", zap.String("name", "wrap"))
	logging.Info("world assembled", zap.Int("volumes", 3))
	_ = logging.Logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "component built") {
		t.Errorf("log output missing debug entry: %q", out)
	}
	if !strings.Contains(out, "world assembled") {
		t.Errorf("log output missing info entry: %q", out)
	}
}

func TestInitializeBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.log")
	err := logging.Initialize(logging.Config{Level: "loud", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer func() {
		if err := logging.Initialize(logging.DefaultConfig()); err != nil {
			t.Fatalf("restoring default config: %v", err)
		}
	}()

	logging.Debug("suppressed", zap.String("name", "wrap"))
	_ = logging.Logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if strings.Contains(string(data), "suppressed") {
		t.Errorf("debug entry emitted at fallback info level: %q", data)
	}
}
