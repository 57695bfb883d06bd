package sound

import (
	"testing"

	"github.com/adedotun/medprep/internal/speech"
)

type countingPlayer struct {
	plays int
}

func (p *countingPlayer) Play([]byte) error {
	p.plays++
	return nil
}

func TestPlayRespectsMute(t *testing.T) {
	player := &countingPlayer{}
	muted := false
	cues := New(player, func() bool { return muted })

	cues.Play(CueCorrect)
	if player.plays != 1 {
		t.Fatalf("expected 1 play, got %d", player.plays)
	}

	muted = true
	cues.Play(CueIncorrect)
	cues.Play(CueAdvance)
	if player.plays != 1 {
		t.Fatalf("muted cues must not play, got %d", player.plays)
	}
}

func TestClipsAreValidWAV(t *testing.T) {
	cues := New(speech.NopPlayer{}, func() bool { return false })
	for cue, clip := range cues.clips {
		if len(clip) <= 44 {
			t.Errorf("cue %d: clip too short (%d bytes)", cue, len(clip))
		}
		if string(clip[0:4]) != "RIFF" {
			t.Errorf("cue %d: not a WAV clip", cue)
		}
	}
}
