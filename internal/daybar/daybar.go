package daybar

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/tvasseur/bourse-data/internal/model"
)

// barKey is the composite grouping key for day bars.
type barKey struct {
	companyID int64
	day       time.Time
}

// acc accumulates one (company, day) group.
type acc struct {
	openTime  time.Time
	closeTime time.Time
	open      float64
	close     float64
	high      float64
	low       float64
	sum       float64
	sumSq     float64
	n         int
	volume    int64
}

// Aggregate reduces cleaned ticks to one DayBar per (company, calendar day),
// sorted by day then company id.
func Aggregate(ticks []model.CleanTick, logger *slog.Logger) []model.DayBar {
	if logger == nil {
		logger = slog.Default()
	}

	groups := make(map[barKey]*acc)
	for _, t := range ticks {
		key := barKey{companyID: t.CompanyID, day: model.Day(t.Time)}
		a, ok := groups[key]
		if !ok {
			a = &acc{
				openTime:  t.Time,
				closeTime: t.Time,
				open:      t.Price,
				close:     t.Price,
				high:      t.Price,
				low:       t.Price,
			}
			groups[key] = a
		} else {
			if t.Time.Before(a.openTime) {
				a.openTime = t.Time
				a.open = t.Price
			}
			if !t.Time.Before(a.closeTime) {
				a.closeTime = t.Time
				a.close = t.Price
			}
			if t.Price > a.high {
				a.high = t.Price
			}
			if t.Price < a.low {
				a.low = t.Price
			}
		}
		a.sum += t.Price
		a.sumSq += t.Price * t.Price
		a.n++
		a.volume += t.Volume
	}

	bars := make([]model.DayBar, 0, len(groups))
	var maxVolume int64
	var clamped int

	for key, a := range groups {
		volume := a.volume
		if volume >= model.MaxStorageInt {
			volume = model.SentinelVolume
			clamped++
		}
		if a.volume > maxVolume {
			maxVolume = a.volume
		}

		bars = append(bars, model.DayBar{
			Day:       key.day,
			CompanyID: key.companyID,
			Open:      a.open,
			Close:     a.close,
			High:      a.high,
			Low:       a.low,
			Mean:      a.sum / float64(a.n),
			Std:       sampleStd(a.sum, a.sumSq, a.n),
			Volume:    volume,
		})
	}

	sort.Slice(bars, func(i, j int) bool {
		if !bars[i].Day.Equal(bars[j].Day) {
			return bars[i].Day.Before(bars[j].Day)
		}
		return bars[i].CompanyID < bars[j].CompanyID
	})

	logger.Debug("aggregated day bars",
		"ticks", len(ticks),
		"bars", len(bars),
		"max_volume", maxVolume,
		"clamped", clamped,
	)

	return bars
}

// sampleStd returns the sample standard deviation, or NaN when fewer than
// two observations exist.
func sampleStd(sum, sumSq float64, n int) float64 {
	if n < 2 {
		return math.NaN()
	}
	variance := (sumSq - sum*sum/float64(n)) / float64(n-1)
	if variance < 0 {
		// Numeric noise on near-constant series.
		variance = 0
	}
	return math.Sqrt(variance)
}
