// Package model defines shared data structures.
package model

import "time"

// ChunkMode selects how a tokenizer groups words into display chunks.
type ChunkMode int

// Chunking modes.
const (
	ModeWord ChunkMode = iota
	ModePhrase
	ModeClause
	ModeCustom
)

// String returns the mode name used in config files and flags.
func (m ChunkMode) String() string {
	switch m {
	case ModeWord:
		return "word"
	case ModePhrase:
		return "phrase"
	case ModeClause:
		return "clause"
	case ModeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseChunkMode maps a mode name to a ChunkMode. Unknown names fall back
// to word mode with ok=false.
func ParseChunkMode(s string) (ChunkMode, bool) {
	switch s {
	case "word":
		return ModeWord, true
	case "phrase":
		return ModePhrase, true
	case "clause":
		return ModeClause, true
	case "custom":
		return ModeCustom, true
	default:
		return ModeWord, false
	}
}

// LayoutInfo locates a chunk's character span within a page's line array.
type LayoutInfo struct {
	PageIndex int
	LineIndex int
	StartChar int
	EndChar   int
}

// Chunk is one atomic unit of display text. WordCount 0 marks a synthetic
// paragraph-break pause unit that is never shown as text. ORPIndex is the
// character offset of the optimal recognition point inside Text.
type Chunk struct {
	Text      string
	WordCount int
	ORPIndex  int
	Layout    *LayoutInfo
}

// IsBreak reports whether the chunk is a paragraph-break marker.
func (c Chunk) IsBreak() bool {
	return c.WordCount == 0
}

// LineType classifies a laid-out line.
type LineType int

// Line types.
const (
	LineBody LineType = iota
	LineHeading
	LineBlank
)

// Line is one fixed-width display line. Level is only meaningful for
// heading lines and is clamped to 1-6.
type Line struct {
	Text  string
	Type  LineType
	Level int
}

// Page is a fixed-size window over the line sequence. LineChunks, when
// present, holds the per-line chunk lists in line order.
type Page struct {
	Lines      []Line
	LineChunks [][]Chunk
}

// FocusTarget is a half-open character range within a line used to drive
// fixation highlighting. Targets for one line partition its text with no
// gaps or overlaps.
type FocusTarget struct {
	StartChar int
	EndChar   int
}

// FocusTiming assigns a percentage-of-line-duration interval to a
// FocusTarget. Consecutive timings are contiguous; the first starts at 0
// and the last ends at 100.
type FocusTiming struct {
	StartPct float64
	EndPct   float64
}

// PredictionResult records one recall/prediction comparison.
type PredictionResult struct {
	Predicted string
	Actual    string
	Loss      float64
	WordIndex int
	Timestamp time.Time
}

// PredictionStats accumulates prediction results. AverageLoss is the
// running mean of Loss over all results so far.
type PredictionStats struct {
	TotalWords   int
	ExactMatches int
	AverageLoss  float64
}

// Add folds one result into the running aggregates.
func (s *PredictionStats) Add(r PredictionResult) {
	s.AverageLoss = (s.AverageLoss*float64(s.TotalWords) + r.Loss) / float64(s.TotalWords+1)
	s.TotalWords++
	if r.Loss == 0 {
		s.ExactMatches++
	}
}

// RampCurve selects the speed ramp shape.
type RampCurve int

// Ramp curves.
const (
	RampNone RampCurve = iota
	RampLinear
	RampLogarithmic
)

// ParseRampCurve maps a curve name to a RampCurve. Unknown names disable
// ramping with ok=false.
func ParseRampCurve(s string) (RampCurve, bool) {
	switch s {
	case "none", "":
		return RampNone, true
	case "linear":
		return RampLinear, true
	case "logarithmic", "log":
		return RampLogarithmic, true
	default:
		return RampNone, false
	}
}

// ReadingConfig defines reading-session settings.
type ReadingConfig struct {
	Mode             ChunkMode
	CustomWidth      int
	WPM              int
	MinWPM           int
	MaxWPM           int
	LineWidth        int
	PageSize         int
	FixationBudget   int
	RampCurve        RampCurve
	RampRate         int
	RampIntervalSec  float64
	RampStartPercent int
	PreviewSentences int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Source      string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionRecord captures a completed reading session.
type SessionRecord struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Source     string
	Mode       string
	TargetWPM  int
	ChunksRead int
	WordsRead  int
	DurationMs int64
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	TargetWPM  int
	WordsRead  int
	DurationMs int64
}

// CorpusArticle is one normalized article from a corpus jsonl file.
type CorpusArticle struct {
	Title     string  `json:"title"`
	Text      string  `json:"text"`
	Domain    string  `json:"domain"`
	FKGrade   float64 `json:"fk_grade"`
	Words     uint64  `json:"words"`
	Sentences uint64  `json:"sentences"`
}

// CorpusTierInfo reports availability of one corpus family/tier pair.
type CorpusTierInfo struct {
	Available     bool
	TotalArticles int
}
