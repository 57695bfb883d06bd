package speech

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/adedotun/medprep/internal/llm"
)

// synthesizer is the slice of the gateway the cache needs.
type synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Cache pronounces medical terms, synthesizing each term at most once
// per session. Requests for a term whose synthesis is already in flight
// are dropped rather than queued: the clip plays when the first request
// lands.
type Cache struct {
	synth  synthesizer
	player Player

	mu       sync.Mutex
	clips    map[string][]byte
	inflight map[string]bool
}

// NewCache creates a session-scoped pronunciation cache.
func NewCache(synth synthesizer, player Player) *Cache {
	return &Cache{
		synth:    synth,
		player:   player,
		clips:    map[string][]byte{},
		inflight: map[string]bool{},
	}
}

// Pronounce plays the term, synthesizing and caching the clip on first
// use. Playback failures are logged and swallowed; synthesis failures
// are returned so the caller can mark the term briefly.
func (c *Cache) Pronounce(ctx context.Context, term string) error {
	c.mu.Lock()
	if clip, ok := c.clips[term]; ok {
		c.mu.Unlock()
		c.play(term, clip)
		return nil
	}
	if c.inflight[term] {
		c.mu.Unlock()
		return nil
	}
	c.inflight[term] = true
	c.mu.Unlock()

	pcm, err := c.synth.Synthesize(ctx, term)

	c.mu.Lock()
	delete(c.inflight, term)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("synthesize %q: %w", term, err)
	}
	clip := EncodeWAV(pcm, llm.SpeechSampleRate)
	c.clips[term] = clip
	c.mu.Unlock()

	c.play(term, clip)
	return nil
}

// Cached reports whether a clip for term is already in the cache.
func (c *Cache) Cached(term string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.clips[term]
	return ok
}

func (c *Cache) play(term string, clip []byte) {
	if err := c.player.Play(clip); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to play pronunciation for %q: %v\n", term, err)
	}
}
