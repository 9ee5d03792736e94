// Package rates provides the per-night price lookup for the property.
package rates

import "time"

// Window is an inclusive month-day range that ignores the year. A window may
// wrap the year boundary (e.g. Nov 15 – Jan 10).
type Window struct {
	StartMonth time.Month
	StartDay   int
	EndMonth   time.Month
	EndDay     int
}

// Contains reports whether the date's month-day falls inside the window.
func (w Window) Contains(date time.Time) bool {
	md := monthDay(date.Month(), date.Day())
	start := monthDay(w.StartMonth, w.StartDay)
	end := monthDay(w.EndMonth, w.EndDay)

	if start <= end {
		return md >= start && md <= end
	}
	// Wrapping window: Nov 15 – Jan 10 contains Dec 25 and Jan 3.
	return md >= start || md <= end
}

func monthDay(m time.Month, d int) int {
	return int(m)*100 + d
}

// Rule binds a seasonal window to weekday and weekend prices in cents.
type Rule struct {
	Window       Window
	WeekdayCents int64
	WeekendCents int64
}

// Calculator scans an ordered rule table; the first window containing a date
// wins. The final rule covers the whole year, so every date has a price.
type Calculator struct {
	rules []Rule
	peak  Window
}

// NewCalculator returns the fixed rule table for the property.
func NewCalculator() *Calculator {
	peak := Window{StartMonth: time.April, StartDay: 1, EndMonth: time.August, EndDay: 31}
	return &Calculator{
		peak: peak,
		rules: []Rule{
			{Window: peak, WeekdayCents: 30000, WeekendCents: 32500},
			{Window: Window{StartMonth: time.March, StartDay: 1, EndMonth: time.March, EndDay: 31}, WeekdayCents: 25000, WeekendCents: 27500},
			{Window: Window{StartMonth: time.September, StartDay: 1, EndMonth: time.October, EndDay: 31}, WeekdayCents: 25000, WeekendCents: 27500},
			// Off-season fallback covers every remaining date.
			{Window: Window{StartMonth: time.January, StartDay: 1, EndMonth: time.December, EndDay: 31}, WeekdayCents: 22500, WeekendCents: 25000},
		},
	}
}

// PriceForNight returns the price in cents for the night starting on date.
// Friday and Saturday nights take the weekend price.
func (c *Calculator) PriceForNight(date time.Time) int64 {
	for _, rule := range c.rules {
		if rule.Window.Contains(date) {
			if isWeekendNight(date) {
				return rule.WeekendCents
			}
			return rule.WeekdayCents
		}
	}
	// Unreachable: the fallback rule spans the full year.
	return c.rules[len(c.rules)-1].WeekdayCents
}

// InPeakWindow reports whether the date falls in the peak season window.
func (c *Calculator) InPeakWindow(date time.Time) bool {
	return c.peak.Contains(date)
}

// AnyNightInPeak reports whether any night of the stay, checkin inclusive to
// checkout exclusive, falls in the peak window.
func (c *Calculator) AnyNightInPeak(checkin, checkout time.Time) bool {
	for night := checkin; night.Before(checkout); night = night.AddDate(0, 0, 1) {
		if c.InPeakWindow(night) {
			return true
		}
	}
	return false
}

func isWeekendNight(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Friday || wd == time.Saturday
}
