package core

import "time"

// Usage summarizes booked hours against the configured quota.
type Usage struct {
	Quota     float64
	Used      float64
	Remaining float64 // clamped at 0
	// PercentUsed is not clamped: 30h against a 25h quota reads 120.
	PercentUsed float64
}

// Slice is one category of the used-vs-remaining breakdown rendered
// as a donut chart.
type Slice struct {
	Label string
	Hours float64
}

// WeeklyBucket is the summed hours for the ISO week starting at
// WeekStart (a Monday). Derived on every load, never persisted.
type WeeklyBucket struct {
	WeekStart Date
	Hours     float64
}

// ComputeUsage sums booked hours and derives the remaining budget.
// Quota is passed in per call; there is no process-wide constant.
func ComputeUsage(entries []Entry, quota float64) Usage {
	var used float64
	for _, e := range entries {
		used += e.Hours
	}

	remaining := quota - used
	if remaining < 0 {
		remaining = 0
	}

	var percent float64
	if quota != 0 {
		percent = used / quota * 100
	}

	return Usage{
		Quota:       quota,
		Used:        used,
		Remaining:   remaining,
		PercentUsed: percent,
	}
}

// Donut returns the two-category breakdown for the usage chart.
func (u Usage) Donut() []Slice {
	return []Slice{
		{Label: "genutzt", Hours: u.Used},
		{Label: "verbleib.", Hours: u.Remaining},
	}
}

// WeekStart returns the Monday beginning the ISO week containing t.
func WeekStart(d Date) Date {
	t := d.Time
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	t = t.AddDate(0, 0, -offset)
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// WeeklyTotals buckets entries into calendar weeks keyed by their
// Monday and densifies the result: every Monday from the earliest
// entry's week through the week containing now appears, with 0 hours
// for weeks absent from the data. An empty entry slice yields an
// empty result; callers render a "no data" state instead of a chart.
func WeeklyTotals(entries []Entry, now time.Time) []WeeklyBucket {
	if len(entries) == 0 {
		return nil
	}

	sums := make(map[Date]float64, len(entries))
	earliest := WeekStart(entries[0].Date)
	for _, e := range entries {
		week := WeekStart(e.Date)
		sums[week] += e.Hours
		if week.Before(earliest.Time) {
			earliest = week
		}
	}

	last := WeekStart(Date{Time: now})
	var buckets []WeeklyBucket
	for week := earliest; !week.After(last.Time); week = week.addDays(7) {
		buckets = append(buckets, WeeklyBucket{WeekStart: week, Hours: sums[week]})
	}
	return buckets
}
