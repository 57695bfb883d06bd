package speech

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestCommandPlayerDoesNotBlockOnPlayback(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a shell script stub")
	}

	// Stub a long-running audio command so a slow clip is observable.
	dir := t.TempDir()
	stub := filepath.Join(dir, "aplay")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nsleep 5\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", dir)

	p := &commandPlayer{command: "aplay"}
	start := time.Now()
	if err := p.Play([]byte("RIFFxxxxWAVE")); err != nil {
		t.Fatalf("play: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Play blocked for %s waiting on the player process", elapsed)
	}
}

func TestCommandPlayerStartFailure(t *testing.T) {
	p := &commandPlayer{command: "medprep-no-such-player"}
	if err := p.Play([]byte("RIFF")); err == nil {
		t.Fatal("expected an error for a missing player command")
	}
}
