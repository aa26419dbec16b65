package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(content)
}

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "atlas.log")

	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 1,
	}
	if err := Setup(Options{Level: "debug", File: cfg}); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	// ~1.5MB of entries crosses the 1MB rotation threshold.
	name := strings.Repeat("t", 200)
	for i := 0; i < 6000; i++ {
		For(Atlas).Info("slot assigned", zap.Int("slot", i), zap.String("texture", name))
	}
	Sync()

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read log dir: %v", err)
	}

	var rotated int
	for _, f := range files {
		if f.Name() == "atlas.log" || !strings.HasPrefix(f.Name(), "atlas") {
			continue
		}
		rotated++
		if !strings.Contains(f.Name(), "-20") {
			t.Errorf("rotated file %s has no timestamp", f.Name())
		}
	}
	if rotated == 0 {
		t.Errorf("no rotated files in %v", files)
	}
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
		{"bogus", []string{"INFO"}, []string{"DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(dir, tt.level+".log")
			if err := Setup(Options{Level: tt.level, File: FileConfig{Path: logFile, MaxSizeMB: 10}}); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			content := readLog(t, logFile)
			for _, exp := range tt.expected {
				if !strings.Contains(content, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(content, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestForTagsComponent(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "named.log")
	if err := Setup(Options{Level: "info", File: FileConfig{Path: logFile, MaxSizeMB: 10}}); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	For(Atlas).Info("unit packed", zap.Int("unit", 3))

	content := readLog(t, logFile)
	if !strings.Contains(content, "atlas") || !strings.Contains(content, "unit packed") {
		t.Errorf("component name missing from %q", content)
	}
}

func TestForBeforeInit(t *testing.T) {
	Log = nil
	l := For(Frame)
	if l == nil {
		t.Fatal("For returned nil before Init")
	}
	l.Info("dropped")
	Warn("dropped too")
}

func TestSetLevelAppliesToRunningLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "level.log")
	if err := Setup(Options{Level: "info", File: FileConfig{Path: logFile, MaxSizeMB: 10}}); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	log := For(Viewer)

	log.Debug("hidden frame stats")
	SetLevel("DEBUG")
	if Level() != zapcore.DebugLevel {
		t.Fatalf("level = %v, want debug", Level())
	}
	log.Debug("visible frame stats")
	SetLevel("info")

	content := readLog(t, logFile)
	if strings.Contains(content, "hidden") {
		t.Error("debug line written before the level changed")
	}
	if !strings.Contains(content, "visible") {
		t.Error("debug line missing after SetLevel")
	}
}

func TestInitNop(t *testing.T) {
	InitNop()
	if Log == nil {
		t.Fatal("InitNop left the global loggers unset")
	}
	Info("discarded")
	Sync()
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")

	if cfg.Path != "/tmp/test.log" {
		t.Errorf("expected path /tmp/test.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 50 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 7 {
		t.Errorf("unexpected rotation limits %+v", cfg)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
