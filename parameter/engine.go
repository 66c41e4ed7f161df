package parameter

import "time"

// Frame driver and lifecycle tuning
const (
	// FrameRateCap is the default maximum update/draw rate
	FrameRateCap = 60

	// TickGranularity is the scheduler tick; the frame cap is enforced on
	// top of it by skipping ticks that arrive under the frame interval
	TickGranularity = 4 * time.Millisecond

	// ResizeDebounce coalesces resize bursts into one re-layout
	ResizeDebounce = 150 * time.Millisecond
)

// Audio cue tuning
const (
	// CueMinGap rate-limits synthesized cues
	CueMinGap = 120 * time.Millisecond

	// CueDuration is the length of one synthesized tone
	CueDuration = 40 * time.Millisecond

	// CueResetFreq is the tone frequency played on drop recycle
	CueResetFreq = 880.0
)
