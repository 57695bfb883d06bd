package sound

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/adedotun/medprep/internal/speech"
)

// Cue is one of the quiz feedback sounds.
type Cue int

const (
	CueCorrect Cue = iota
	CueIncorrect
	CueAdvance
)

const sampleRate = 24000

// Cues plays short feedback tones, honoring the persisted mute flag
// through the muted callback. Clips are rendered once up front.
type Cues struct {
	player speech.Player
	muted  func() bool
	clips  map[Cue][]byte
}

// New builds the cue player.
func New(player speech.Player, muted func() bool) *Cues {
	return &Cues{
		player: player,
		muted:  muted,
		clips: map[Cue][]byte{
			CueCorrect:   speech.EncodeWAV(chord(120*time.Millisecond, 660, 880), sampleRate),
			CueIncorrect: speech.EncodeWAV(tone(220, 180*time.Millisecond), sampleRate),
			CueAdvance:   speech.EncodeWAV(tone(440, 60*time.Millisecond), sampleRate),
		},
	}
}

// Play sounds the cue unless muted. Failures are logged and swallowed;
// a missing audio backend never disturbs the quiz.
func (c *Cues) Play(cue Cue) {
	if c.muted() {
		return
	}
	clip, ok := c.clips[cue]
	if !ok {
		return
	}
	if err := c.player.Play(clip); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to play cue: %v\n", err)
	}
}

// tone renders a sine tone as 16-bit mono PCM with a short linear fade
// at both ends to avoid clicks.
func tone(freq float64, dur time.Duration) []byte {
	samples := int(float64(sampleRate) * dur.Seconds())
	fade := sampleRate / 200 // 5ms
	pcm := make([]byte, 2*samples)

	for i := 0; i < samples; i++ {
		v := math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
		gain := 0.5
		if i < fade {
			gain *= float64(i) / float64(fade)
		}
		if samples-i < fade {
			gain *= float64(samples-i) / float64(fade)
		}
		s := int16(v * gain * math.MaxInt16)
		pcm[2*i] = byte(s)
		pcm[2*i+1] = byte(s >> 8)
	}
	return pcm
}

// chord plays the given notes in sequence, one segment each.
func chord(segment time.Duration, freqs ...float64) []byte {
	var pcm []byte
	for _, f := range freqs {
		pcm = append(pcm, tone(f, segment)...)
	}
	return pcm
}
