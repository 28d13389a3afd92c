// Package session holds the mutable scheduling context that drives a
// reading run: current chunk index, play state, accumulated active time,
// and the preview loop. The engine packages stay pure; all clock handling
// lives here, with the caller supplying timestamps so the state machine
// itself never reads the wall clock.
package session

import (
	"time"

	"github.com/artemgv/ritmo/internal/model"
	"github.com/artemgv/ritmo/internal/pace"
	"github.com/artemgv/ritmo/internal/sentence"
)

// Player advances an index over a chunk sequence. Exactly one driving
// loop may be active at a time: starting a preview suspends playback, and
// stopping it restores the pre-preview index.
type Player struct {
	chunks []model.Chunk

	index   int
	playing bool

	preview       bool
	previewReturn int

	targetWPM int
	ramp      pace.Ramp

	finished bool

	activeMs  float64
	resumedAt time.Time
}

// New returns a stopped player positioned at the first chunk.
func New(chunks []model.Chunk, targetWPM int, ramp pace.Ramp) *Player {
	return &Player{chunks: chunks, targetWPM: targetWPM, ramp: ramp}
}

// SetChunks replaces the chunk sequence after a retokenization and clamps
// the index into the new sequence. Any running preview is discarded.
func (p *Player) SetChunks(chunks []model.Chunk) {
	p.chunks = chunks
	p.preview = false
	p.finished = false
	if p.index >= len(chunks) {
		p.index = 0
		if n := len(chunks); n > 0 {
			p.index = n - 1
		}
	}
}

// Index returns the current chunk index.
func (p *Player) Index() int {
	return p.index
}

// Seek moves to the given index, clamped into range. Seeking reopens a
// finished sequence so the chunk under the cursor is shown again.
func (p *Player) Seek(index int) {
	if index < 0 {
		index = 0
	}
	if index >= len(p.chunks) && len(p.chunks) > 0 {
		index = len(p.chunks) - 1
	}
	p.index = index
	p.finished = false
}

// Current returns the chunk under the cursor.
func (p *Player) Current() (model.Chunk, bool) {
	if p.index < 0 || p.index >= len(p.chunks) {
		return model.Chunk{}, false
	}
	return p.chunks[p.index], true
}

// Done reports whether playback has run past the final chunk. The final
// chunk itself still displays for its full duration before Done flips.
func (p *Player) Done() bool {
	return p.finished
}

// Playing reports whether the primary playback loop is active.
func (p *Player) Playing() bool {
	return p.playing
}

// Previewing reports whether the preview loop is active.
func (p *Player) Previewing() bool {
	return p.preview
}

// Play starts the primary loop. It is refused while a preview is active;
// the preview must be stopped first.
func (p *Player) Play(now time.Time) bool {
	if p.preview || p.playing {
		return false
	}
	p.playing = true
	p.resumedAt = now
	return true
}

// Pause suspends the primary loop, folding the elapsed span into the
// accumulated active time so ramp state survives the pause.
func (p *Player) Pause(now time.Time) {
	if !p.playing {
		return
	}
	p.activeMs += float64(now.Sub(p.resumedAt).Milliseconds())
	p.playing = false
}

// Advance moves the cursor forward one chunk. It returns false at the end
// of the sequence, which also stops playback and marks the player done.
func (p *Player) Advance(now time.Time) bool {
	if p.index+1 >= len(p.chunks) {
		p.Pause(now)
		p.finished = true
		return false
	}
	p.index++
	return true
}

// StartPreview jumps the cursor sentenceCount sentence boundaries ahead
// and remembers where it came from. Starting a preview suspends playback;
// only one of the two loops may drive the player.
func (p *Player) StartPreview(now time.Time, sentenceCount int) bool {
	if p.preview || len(p.chunks) == 0 {
		return false
	}
	p.Pause(now)
	p.preview = true
	p.previewReturn = p.index
	p.index = sentence.FindPreviewTarget(p.chunks, p.index, sentenceCount)
	return true
}

// StopPreview restores the pre-preview index. Playback is left paused;
// the caller decides when to resume.
func (p *Player) StopPreview() {
	if !p.preview {
		return
	}
	p.preview = false
	p.index = p.previewReturn
}

// ActiveMs returns total active reading time through now.
func (p *Player) ActiveMs(now time.Time) float64 {
	if !p.playing {
		return p.activeMs
	}
	return p.activeMs + float64(now.Sub(p.resumedAt).Milliseconds())
}

// TargetWPM returns the configured target speed.
func (p *Player) TargetWPM() int {
	return p.targetWPM
}

// SetTargetWPM replaces the target speed. The running timer picks the new
// value up on its next tick.
func (p *Player) SetTargetWPM(wpm int) {
	if wpm > 0 {
		p.targetWPM = wpm
	}
}

// EffectiveWPM returns the ramped speed at now.
func (p *Player) EffectiveWPM(now time.Time) int {
	return pace.EffectiveSpeed(p.targetWPM, p.ActiveMs(now), p.ramp)
}

// NextDelay returns how long the current chunk should stay on screen at
// the current effective speed.
func (p *Player) NextDelay(now time.Time) time.Duration {
	c, ok := p.Current()
	if !ok {
		return 0
	}
	ms := pace.DisplayDuration(c, p.EffectiveWPM(now))
	return time.Duration(ms * float64(time.Millisecond))
}

// WordsRead counts the words in chunks consumed so far.
func (p *Player) WordsRead() int {
	words := 0
	for i := 0; i <= p.index && i < len(p.chunks); i++ {
		words += p.chunks[i].WordCount
	}
	return words
}

// Progress returns consumed chunks as a fraction of the sequence.
func (p *Player) Progress() float64 {
	if len(p.chunks) == 0 {
		return 0
	}
	return float64(p.index+1) / float64(len(p.chunks))
}
