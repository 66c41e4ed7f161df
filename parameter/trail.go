package parameter

import "time"

// ParticleTrail tuning. Speeds are in cells per second.
const (
	// TrailMaxParticles is the combined ceiling of live and pooled particles
	TrailMaxParticles = 96

	// TrailMaxSpawnPerEvent caps particles emitted for one pointer event
	TrailMaxSpawnPerEvent = 6

	// TrailSpeedPerSpawn is the pointer speed granting one extra particle
	TrailSpeedPerSpawn = 25.0

	// TrailThrottle is the minimum interval between processed pointer events
	TrailThrottle = 12 * time.Millisecond

	// TrailSmoothing is the EMA coefficient pulling the smoothed position
	// toward the raw pointer coordinate (1.0 = hard snap)
	TrailSmoothing = 0.35

	// TrailGravity is constant downward acceleration (cells/sec²)
	TrailGravity = 9.0

	// TrailDamping is the multiplicative velocity decay per 16ms frame
	TrailDamping = 0.90

	// TrailLifetimeMin/TrailLifetimeMax bound the random particle lifetime
	TrailLifetimeMin = 400 * time.Millisecond
	TrailLifetimeMax = 1100 * time.Millisecond

	// TrailVisibilityEpsilon retires particles whose opacity falls below it
	TrailVisibilityEpsilon = 0.01

	// TrailBoundsMargin is how far outside the surface a particle may drift
	// before retirement
	TrailBoundsMargin = 2

	// TrailGlowIntensity scales the additive halo painted around particles
	TrailGlowIntensity = 0.6

	// TrailSpinRate is rune cycling speed conveying rotation (cycles/sec)
	TrailSpinRate = 3.0

	// TrailJitter is random velocity added to emitted particles (cells/sec)
	TrailJitter = 4.0

	// TrailVelocityInherit is the fraction of pointer velocity given to
	// emitted particles
	TrailVelocityInherit = 0.4
)

// TrailCharSet is the default character pool for particles
const TrailCharSet = "*+·˖✦✧"
