package market

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
)

// ErrNoMarketData is returned when a city snapshot contains no schools.
// An explicit no-data outcome keeps an empty city from rendering as a
// misleading "average €0" dashboard.
var ErrNoMarketData = errors.New("no market data available")

// Statistics summarizes one city's market relative to a single school,
// for that school's private dashboard. Recomputed per request from the
// current snapshot, never persisted.
type Statistics struct {
	// AverageDrivingLessonPrice and AverageBaseFee are city-wide means,
	// each independently rounded half-up to whole euros.
	AverageDrivingLessonPrice int64 `json:"average_driving_lesson_price"`
	AverageBaseFee            int64 `json:"average_base_fee"`

	// SchoolCount is the number of published schools in the snapshot.
	SchoolCount int `json:"school_count"`

	// CityRank is the target school's 1-based position when the city is
	// sorted ascending by raw per-lesson price. Note this deliberately
	// differs from the public listing order, which ranks by the full
	// experience-level-adjusted total: the dashboard answers "who is
	// cheapest per lesson", the listing "who is cheapest overall".
	CityRank int `json:"city_rank"`
}

// ComputeStatistics derives market statistics for the target school from a
// city snapshot. Missing or negative monetary fields count as 0, matching
// RankForDisplay's lenient policy.
//
// If the target school is absent from the snapshot (unpublished or deleted
// concurrently) the rank defaults to the school count, i.e. last place, so
// a dashboard never hard-errors on a transient consistency gap.
//
// Returns ErrNoMarketData for an empty snapshot.
func ComputeStatistics(schools []domain.School, targetID uuid.UUID) (*Statistics, error) {
	if len(schools) == 0 {
		return nil, ErrNoMarketData
	}

	count := len(schools)

	var totalLessonPrice, totalBaseFee int64
	for i := range schools {
		totalLessonPrice += valueOrZero(schools[i].DrivingLessonPrice)
		totalBaseFee += valueOrZero(schools[i].BaseFee)
	}

	// Rank by raw per-lesson price, ascending. Stable so that equal prices
	// keep fetch order, same as the display ranking.
	byLessonPrice := make([]domain.School, len(schools))
	copy(byLessonPrice, schools)
	sort.SliceStable(byLessonPrice, func(i, j int) bool {
		return valueOrZero(byLessonPrice[i].DrivingLessonPrice) < valueOrZero(byLessonPrice[j].DrivingLessonPrice)
	})

	rank := count // fail-soft: absent target ranks last
	for i := range byLessonPrice {
		if byLessonPrice[i].ID == targetID {
			rank = i + 1
			break
		}
	}

	return &Statistics{
		AverageDrivingLessonPrice: roundedMean(totalLessonPrice, count),
		AverageBaseFee:            roundedMean(totalBaseFee, count),
		SchoolCount:               count,
		CityRank:                  rank,
	}, nil
}

// roundedMean divides sum by count and rounds half-up to the nearest whole
// euro. Sums are non-negative here, so half-up is (2*sum + count) / (2*count)
// in integer arithmetic: e.g. [30, 31] averages to 31, not 30.
func roundedMean(sum int64, count int) int64 {
	n := int64(count)
	return (2*sum + n) / (2 * n)
}
