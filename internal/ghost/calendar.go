package ghost

import (
	"fmt"
	"time"
)

// preferredTimes returns the posting slots for a given daily cadence.
func preferredTimes(postsPerDay int) []string {
	switch postsPerDay {
	case 1:
		return []string{"09:00"}
	case 2:
		return []string{"09:00", "15:00"}
	case 4:
		return []string{"09:00", "12:00", "15:00", "18:00"}
	default:
		return []string{"09:00", "13:00", "17:00"}
	}
}

func parseGapTime(s string) (time.Time, error) {
	at, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid gap time %q: %w", s, err)
	}
	return at, nil
}

// ComputeGaps walks the preferred posting slots over the horizon and returns
// every future slot not already occupied. occupied times match a slot when
// they fall in the same hour.
func ComputeGaps(now time.Time, days, postsPerDay int, occupied []time.Time, loc *time.Location) []Gap {
	if loc == nil {
		loc = time.UTC
	}

	taken := make(map[string]bool, len(occupied))
	for _, t := range occupied {
		taken[t.In(loc).Format("2006-01-02 15")] = true
	}

	slots := preferredTimes(postsPerDay)
	var gaps []Gap

	for day := 0; day < days; day++ {
		date := now.In(loc).AddDate(0, 0, day)
		for _, slot := range slots {
			parsed, err := time.Parse("15:04", slot)
			if err != nil {
				continue
			}

			at := time.Date(date.Year(), date.Month(), date.Day(),
				parsed.Hour(), parsed.Minute(), 0, 0, loc)

			if at.Before(now) || taken[at.Format("2006-01-02 15")] {
				continue
			}

			gaps = append(gaps, Gap{At: at.Format(time.RFC3339), Platform: "linkedin"})
		}
	}

	return gaps
}
