package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Onset(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// Quiet history
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{
			WindowEndTick: int64(i * 300),
			LoudnessMean:  0.1,
			LoudnessPeak:  0.15,
		})
	}

	bookmarks := bd.Check(WindowStats{
		WindowEndTick: 1500,
		LoudnessMean:  0.3,
		LoudnessPeak:  0.7,
	})
	if !hasBookmark(bookmarks, BookmarkOnset) {
		t.Error("expected onset bookmark")
	}
}

func TestBookmarkDetector_NoOnsetWithoutHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{LoudnessMean: 0.1, LoudnessPeak: 0.1})

	bookmarks := bd.Check(WindowStats{LoudnessMean: 0.5, LoudnessPeak: 0.9})
	if hasBookmark(bookmarks, BookmarkOnset) {
		t.Error("onset needs at least 3 windows of history")
	}
}

func TestBookmarkDetector_Silence(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 300), LoudnessMean: 0.4, LoudnessPeak: 0.6})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 900})
	if !hasBookmark(bookmarks, BookmarkSilence) {
		t.Fatal("expected silence bookmark")
	}

	// Only the first silent window triggers
	bookmarks = bd.Check(WindowStats{WindowEndTick: 1200})
	if hasBookmark(bookmarks, BookmarkSilence) {
		t.Error("silence triggered twice in one silent stretch")
	}
}

func TestBookmarkDetector_SilentStart(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 3; i++ {
		if bookmarks := bd.Check(WindowStats{WindowEndTick: int64(i * 300)}); hasBookmark(bookmarks, BookmarkSilence) {
			t.Fatalf("silence bookmark at window %d of a run that never had sound", i)
		}
	}
}

func TestBookmarkDetector_Saturation(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bookmarks := bd.Check(WindowStats{WindowEndTick: 300, Clamped: 12, DistanceMax: 1385})
	if !hasBookmark(bookmarks, BookmarkSaturation) {
		t.Fatal("expected saturation bookmark")
	}

	bookmarks = bd.Check(WindowStats{WindowEndTick: 600, Clamped: 40})
	if hasBookmark(bookmarks, BookmarkSaturation) {
		t.Error("saturation triggered again while still clamping")
	}

	bd.Check(WindowStats{WindowEndTick: 900})
	bookmarks = bd.Check(WindowStats{WindowEndTick: 1200, Clamped: 1})
	if !hasBookmark(bookmarks, BookmarkSaturation) {
		t.Error("expected saturation bookmark after a clean window")
	}
}

func TestBookmarkDetector_Steady(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := 0
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{
			WindowEndTick: int64(i * 300),
			LoudnessMean:  0.5,
			LoudnessPeak:  0.55,
			LoudnessStd:   0.02,
		})
		if hasBookmark(bookmarks, BookmarkSteady) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("steady fired %d times, want 1", fired)
	}
}

func TestBookmarkDetector_HistoryOrder(t *testing.T) {
	bd := NewBookmarkDetector(5)
	for i := 0; i < 7; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i)})
	}

	history := bd.getHistory()
	if len(history) != 5 {
		t.Fatalf("history length = %d, want 5", len(history))
	}
	for i, h := range history {
		if h.WindowEndTick != int64(i+2) {
			t.Errorf("history[%d] = tick %d, want %d", i, h.WindowEndTick, i+2)
		}
	}
}
