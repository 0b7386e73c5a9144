package model

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestVersionFlagIsBool(t *testing.T) {
	var v VersionFlag
	if !v.IsBool() {
		t.Error("version flag should behave as a boolean")
	}
}

func TestVersionFlagBeforeApplyPrintsVersion(t *testing.T) {
	var v VersionFlag
	app := &kong.Kong{Exit: func(int) {}}
	vars := kong.Vars{"version": "1.2.3-abc1234"}

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	if err := v.BeforeApply(app, vars); err != nil {
		t.Fatalf("BeforeApply failed: %v", err)
	}
	_ = w.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	if !strings.Contains(buf.String(), "1.2.3-abc1234") {
		t.Errorf("expected version output, got %q", buf.String())
	}
}
