package parameter

// RainField tuning. Speeds are in cells per second, alphas in [0..1].
const (
	// RainMinSpeed is minimum fall speed assigned to a drop at spawn/reset
	RainMinSpeed = 6.0
	// RainMaxSpeed is maximum fall speed assigned to a drop at spawn/reset
	RainMaxSpeed = 18.0

	// RainDensity is the fraction of available columns populated with drops
	RainDensity = 0.9

	// RainMinDrops/RainMaxDrops clamp the density-derived column count
	RainMinDrops = 4
	RainMaxDrops = 240

	// RainColumnWidth is the horizontal cell spacing between drop columns
	RainColumnWidth = 1

	// RainTrailLength is the maximum character cells kept per drop
	RainTrailLength = 14

	// RainHeadChance is the probability of appending a head cell when the
	// drop crosses into a new row
	RainHeadChance = 0.85

	// RainSwapChance is the Matrix-style probability of mutating a random
	// trailing cell's character per row crossed
	RainSwapChance = 0.4

	// RainFadeFactor is the per-frame alpha multiplier applied to every
	// trailing cell
	RainFadeFactor = 0.92

	// RainFadeAlpha is the strength of the black composite laid over the
	// previous frame instead of a hard clear
	RainFadeAlpha = 0.22
)

// RainCharSet is the default character pool for drop cells
const RainCharSet = "ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789"
