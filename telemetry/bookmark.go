package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkOnset      BookmarkType = "onset"
	BookmarkSilence    BookmarkType = "silence"
	BookmarkSaturation BookmarkType = "saturation"
	BookmarkSteady     BookmarkType = "steady"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int64        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// Thresholds for bookmark detection, in normalized loudness.
const (
	onsetMinPeak    = 0.3
	silenceLoudness = 0.01
	steadyMinMean   = 0.05
	steadyWindows   = 5
)

// BookmarkDetector detects notable moments in the loudness history.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	silent             bool // Inside a silent stretch
	saturated          bool // Previous window clamped
	steadyWindowsCount int  // Consecutive windows with low loudness variance
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < steadyWindows {
		historySize = steadyWindows
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Onset: peak loudness > 2x rolling mean
		if b := bd.checkOnset(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Steady: loudness variance stays low for several windows
		if b := bd.checkSteady(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Silence: loudness falls to the floor after sound
	if b := bd.checkSilence(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Saturation: the swarm starts hitting the position bound
	if b := bd.checkSaturation(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the recorded windows, oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]WindowStats, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) checkOnset(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.LoudnessMean
	}
	avg := total / float64(len(history))

	if stats.LoudnessPeak > onsetMinPeak && stats.LoudnessPeak > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkOnset,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Peak loudness %.2f over rolling mean %.2f", stats.LoudnessPeak, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSilence(stats WindowStats) *Bookmark {
	quiet := stats.LoudnessPeak < silenceLoudness
	wasSilent := bd.silent
	bd.silent = quiet
	if !quiet || wasSilent || (!bd.historyFull && bd.historyIdx == 0) {
		return nil
	}

	prev := bd.history[(bd.historyIdx+bd.historySize-1)%bd.historySize]
	return &Bookmark{
		Type:        BookmarkSilence,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Loudness fell to silence from mean %.2f", prev.LoudnessMean),
	}
}

func (bd *BookmarkDetector) checkSaturation(stats WindowStats) *Bookmark {
	hit := stats.Clamped > 0
	defer func() { bd.saturated = hit }()
	if !hit || bd.saturated {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSaturation,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d axis values reached the bound, max distance %.1f", stats.Clamped, stats.DistanceMax),
	}
}

func (bd *BookmarkDetector) checkSteady(stats WindowStats) *Bookmark {
	if stats.LoudnessMean < steadyMinMean {
		bd.steadyWindowsCount = 0
		return nil
	}

	// Coefficient of variation within the window below 20%
	if stats.LoudnessStd/stats.LoudnessMean < 0.2 {
		bd.steadyWindowsCount++
	} else {
		bd.steadyWindowsCount = 0
	}

	if bd.steadyWindowsCount == steadyWindows { // trigger exactly once per run
		return &Bookmark{
			Type:        BookmarkSteady,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Steady loudness around %.2f over %d windows", stats.LoudnessMean, steadyWindows),
		}
	}
	return nil
}
