// Package urgency buckets how soon (or overdue) a calendar date is relative
// to "now". It backs both the session freshness display and the
// registration/request deadline badges, so it stays a leaf with no domain
// dependencies.
package urgency

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

// Tier is a coarse urgency bucket, ordered from most to least urgent.
type Tier string

const (
	TierOverdue Tier = "overdue"
	TierToday   Tier = "today"
	TierNear    Tier = "near"
	TierNormal  Tier = "normal"
	TierUnknown Tier = "unknown"
)

// nearWindowDays is the max daysUntil still considered "near".
const nearWindowDays = 2

// unknownSortValue pushes unclassifiable dates after every real one
// when sorting by ascending urgency.
const unknownSortValue = 999

type Urgency struct {
	Tier      Tier     `json:"tier"`
	DaysUntil null.Int `json:"days_until"`
}

// Classify buckets target's distance from now into a Tier.
func Classify(target, now core.Date) Urgency {
	days := now.DaysUntil(target)

	var tier Tier
	switch {
	case days < 0:
		tier = TierOverdue
	case days == 0:
		tier = TierToday
	case days <= nearWindowDays:
		tier = TierNear
	default:
		tier = TierNormal
	}
	return Urgency{Tier: tier, DaysUntil: null.IntFrom(days)}
}

// ClassifyString classifies a raw date string; an unparseable or empty
// value degrades to TierUnknown with a null DaysUntil, never an error.
func ClassifyString(target string, now core.Date) Urgency {
	d, err := core.ParseDate(target)
	if err != nil {
		return Urgency{Tier: TierUnknown}
	}
	return Classify(d, now)
}

// SortValue orders urgencies ascending: most overdue first, unknown last.
func (u Urgency) SortValue() int {
	if !u.DaysUntil.Valid {
		return unknownSortValue
	}
	return u.DaysUntil.Int
}
