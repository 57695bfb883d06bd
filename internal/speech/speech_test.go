package speech

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"github.com/adedotun/medprep/internal/llm"
)

func TestEncodeWAVHeader(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	wav := EncodeWAV(pcm, 24000)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("expected %d bytes, got %d", 44+len(pcm), len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatalf("bad container magic: %q %q", wav[0:4], wav[8:12])
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 24000 {
		t.Fatalf("sample rate = %d, want 24000", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:24]); got != 1 {
		t.Fatalf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Fatalf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Fatalf("data size = %d, want %d", got, len(pcm))
	}
	if string(wav[44:]) != string(pcm) {
		t.Fatal("pcm payload mangled")
	}
}

// recordingPlayer counts plays.
type recordingPlayer struct {
	mu    sync.Mutex
	plays int
}

func (p *recordingPlayer) Play([]byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays++
	return nil
}

func (p *recordingPlayer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plays
}

func TestPronounceSynthesizesOncePerTerm(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddSpeech(llm.MockSpeech{Audio: []byte{1, 2, 3, 4}})
	player := &recordingPlayer{}
	cache := NewCache(mock, player)

	if err := cache.Pronounce(context.Background(), "dyspnea"); err != nil {
		t.Fatalf("first pronounce: %v", err)
	}
	if !cache.Cached("dyspnea") {
		t.Fatal("clip not cached")
	}

	// Cache hit: no second synthesis, queue is empty and would error.
	if err := cache.Pronounce(context.Background(), "dyspnea"); err != nil {
		t.Fatalf("cached pronounce: %v", err)
	}
	if len(mock.SpeechTexts) != 1 {
		t.Fatalf("expected 1 synthesis, got %d", len(mock.SpeechTexts))
	}
	if player.count() != 2 {
		t.Fatalf("expected 2 plays, got %d", player.count())
	}
}

func TestPronounceFailureNotCached(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddSpeech(llm.MockSpeech{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	mock.AddSpeech(llm.MockSpeech{Audio: []byte{9, 9}})
	player := &recordingPlayer{}
	cache := NewCache(mock, player)

	if err := cache.Pronounce(context.Background(), "orthopnea"); err == nil {
		t.Fatal("expected error")
	}
	if cache.Cached("orthopnea") {
		t.Fatal("failed synthesis must not cache")
	}

	// Retry succeeds.
	if err := cache.Pronounce(context.Background(), "orthopnea"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if player.count() != 1 {
		t.Fatalf("expected 1 play, got %d", player.count())
	}
}

// blockingSynth blocks until released, to observe in-flight requests.
type blockingSynth struct {
	started chan struct{}
	release chan struct{}
	calls   int
	mu      sync.Mutex
}

func (s *blockingSynth) Synthesize(_ context.Context, _ string) ([]byte, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	close(s.started)
	<-s.release
	return []byte{1, 2}, nil
}

func TestPronounceInFlightDeduplicated(t *testing.T) {
	synth := &blockingSynth{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	player := &recordingPlayer{}
	cache := NewCache(synth, player)

	done := make(chan error, 1)
	go func() {
		done <- cache.Pronounce(context.Background(), "tachypnea")
	}()

	<-synth.started
	// Second request while synthesis is in flight: dropped, no error.
	if err := cache.Pronounce(context.Background(), "tachypnea"); err != nil {
		t.Fatalf("in-flight pronounce: %v", err)
	}

	close(synth.release)
	if err := <-done; err != nil {
		t.Fatalf("first pronounce: %v", err)
	}

	synth.mu.Lock()
	calls := synth.calls
	synth.mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected 1 synthesis, got %d", calls)
	}
	if player.count() != 1 {
		t.Fatalf("expected 1 play, got %d", player.count())
	}
}
