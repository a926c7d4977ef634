package loop

import "time"

// Difficulty ramps the gravity period down as pieces spawn. Every Every
// pieces the period is multiplied by Factor, never dropping below
// MinPeriod.
type Difficulty struct {
	Period    time.Duration
	MinPeriod time.Duration
	Factor    float64
	Every     int
	Level     int

	next int
}

// NewDifficulty returns a ramp starting at period. A floor above period is
// lowered to period.
func NewDifficulty(period, minPeriod time.Duration, factor float64, every int) Difficulty {
	return Difficulty{
		Period:    period,
		MinPeriod: min(minPeriod, period),
		Factor:    factor,
		Every:     every,
		next:      every,
	}
}

// Update applies every milestone reached by spawned and reports whether the
// period changed level.
func (d *Difficulty) Update(spawned int) bool {
	if d.Every <= 0 {
		return false
	}
	if d.next == 0 {
		d.next = d.Every
	}

	leveled := false
	for spawned >= d.next {
		d.next += d.Every
		d.Level++
		d.Period = max(d.MinPeriod, time.Duration(float64(d.Period)*d.Factor))
		leveled = true
	}
	return leveled
}

// Next returns the spawn count at which the next speed-up happens.
func (d *Difficulty) Next() int {
	if d.next == 0 {
		return d.Every
	}
	return d.next
}
