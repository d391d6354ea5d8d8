package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samvad-hq/samvad-news-digest/internal/config"
)

func TestPackageHelpersSafeBeforeInit(t *testing.T) {
	saved := S
	S = nil
	defer func() { S = saved }()

	// Must not panic when logging before Init.
	InfoObj("info", "k", "v")
	DebugObj("debug", "k", "v")
	WarnObj("warn", "k", "v")
	ErrorObj("error", "k", "v")
	if err := Close(); err != nil {
		t.Fatalf("Close before Init: %v", err)
	}
}

func TestInitTeesEntriesToLogFile(t *testing.T) {
	saved := S
	defer func() { S = saved }()

	logFile := filepath.Join(t.TempDir(), "digest.log")
	log, err := Init(&config.Config{LogLevel: "debug", LogFile: logFile})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	log.InfoObj("instance entry", "source", "interface")
	InfoObj("package entry", "source", "helper")
	DebugObj("package debug entry", "source", "helper")
	WarnObj("package warn entry", "source", "helper")
	Close()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	for _, msg := range []string{"instance entry", "package entry", "package debug entry", "package warn entry"} {
		if !strings.Contains(content, msg) {
			t.Fatalf("log file missing %q:\n%s", msg, content)
		}
	}
}
