package visualizer

import (
	"log/slog"

	"github.com/pthm-cable/murmur/telemetry"
)

// flushTelemetry closes the stats window when it is due, writes it out and
// checks it for bookmarks.
func (v *Visualizer) flushTelemetry() {
	tick := v.swarm.Tick()
	if !v.collector.ShouldFlush(tick) {
		return
	}

	stats := v.collector.Flush(tick, v.swarm)
	stats.SimTimeSec = v.elapsed
	perfStats := v.perf.Stats()
	v.lastWindow = stats
	v.hasWindow = true

	if v.statsCallback != nil {
		v.statsCallback(stats)
	}

	if v.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := v.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := v.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range v.bookmarks.Check(stats) {
		if v.opts.LogStats {
			bm.LogBookmark()
		}
		if err := v.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		v.saveSnapshot(&bm)
	}
}

// saveSnapshot writes the swarm state to the output directory.
func (v *Visualizer) saveSnapshot(bookmark *telemetry.Bookmark) {
	if v.output == nil {
		if bookmark == nil {
			slog.Warn("snapshot skipped, no output directory")
		}
		return
	}

	snapshot := telemetry.NewSnapshot(v.swarm, v.opts.Seed, v.elapsed)
	snapshot.Bookmark = bookmark

	path, err := v.output.WriteSnapshot(snapshot)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", snapshot.Tick)
}
