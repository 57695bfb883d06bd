package speech

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Player plays a WAV clip. Play starts playback and returns without
// waiting for it to finish; callers sit on the UI goroutine.
// Implementations are expected to be safe for concurrent use.
type Player interface {
	Play(wav []byte) error
}

// NewPlayer returns a player shelling out to the platform's audio
// command, or a silent player when none is available.
func NewPlayer() Player {
	for _, name := range playerCandidates() {
		if _, err := exec.LookPath(name); err == nil {
			return &commandPlayer{command: name}
		}
	}
	return NopPlayer{}
}

func playerCandidates() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"afplay"}
	case "windows":
		return []string{"powershell"}
	default:
		return []string{"aplay", "paplay", "play"}
	}
}

// commandPlayer writes the clip to a temp file and hands it to the
// platform audio command.
type commandPlayer struct {
	command string
}

func (p *commandPlayer) Play(wav []byte) error {
	f, err := os.CreateTemp("", "medprep-*.wav")
	if err != nil {
		return fmt.Errorf("write audio clip: %w", err)
	}
	if _, err := f.Write(wav); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write audio clip: %w", err)
	}
	f.Close()

	var cmd *exec.Cmd
	switch p.command {
	case "powershell":
		cmd = exec.Command("powershell", "-c",
			fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", f.Name()))
	case "aplay", "play":
		cmd = exec.Command(p.command, "-q", f.Name())
	default:
		cmd = exec.Command(p.command, f.Name())
	}

	if err := cmd.Start(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("%s: %w", p.command, err)
	}

	// Playback runs detached; a several-second clip must not stall the
	// update loop. The temp file is reaped once the player exits.
	go func() {
		cmd.Wait()
		os.Remove(f.Name())
	}()
	return nil
}

// NopPlayer silently drops clips. It serves headless environments and
// tests.
type NopPlayer struct{}

func (NopPlayer) Play([]byte) error { return nil }
