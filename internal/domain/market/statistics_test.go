package market

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
)

func TestComputeStatisticsAverages(t *testing.T) {
	t.Parallel()

	schools := []domain.School{
		listedSchool("A", 200, 30, 50, 80, false),
		listedSchool("B", 300, 31, 50, 80, false),
	}

	stats, err := ComputeStatistics(schools, schools[0].ID)
	require.NoError(t, err)

	// (30+31)/2 = 30.5 rounds half-up to 31, not down to 30.
	assert.Equal(t, int64(31), stats.AverageDrivingLessonPrice)
	assert.Equal(t, int64(250), stats.AverageBaseFee)
	assert.Equal(t, 2, stats.SchoolCount)
	assert.Equal(t, 1, stats.CityRank)
}

func TestComputeStatisticsRankByLessonPriceOnly(t *testing.T) {
	t.Parallel()

	// High base fee but cheapest lesson: rank 1. The dashboard rank uses
	// the raw per-lesson price, not the level-adjusted total.
	target := listedSchool("Target", 1000, 25, 50, 80, false)
	schools := []domain.School{
		listedSchool("A", 100, 40, 50, 80, false),
		target,
		listedSchool("B", 100, 30, 50, 80, false),
	}

	stats, err := ComputeStatistics(schools, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CityRank)
	assert.Equal(t, 3, stats.SchoolCount)
}

func TestComputeStatisticsFailSoftRank(t *testing.T) {
	t.Parallel()

	schools := []domain.School{
		listedSchool("A", 100, 30, 50, 80, false),
		listedSchool("B", 100, 31, 50, 80, false),
		listedSchool("C", 100, 32, 50, 80, false),
		listedSchool("D", 100, 33, 50, 80, false),
		listedSchool("E", 100, 34, 50, 80, false),
	}

	// A target absent from the snapshot ranks last instead of failing.
	stats, err := ComputeStatistics(schools, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.CityRank)
}

func TestComputeStatisticsEmptySnapshot(t *testing.T) {
	t.Parallel()

	stats, err := ComputeStatistics(nil, uuid.New())
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, ErrNoMarketData)
}

func TestComputeStatisticsMissingFieldsCountAsZero(t *testing.T) {
	t.Parallel()

	broken := listedSchool("Kaputt", 0, 0, 0, 0, false)
	broken.DrivingLessonPrice = nil
	broken.BaseFee = nil
	schools := []domain.School{
		listedSchool("A", 200, 40, 50, 80, false),
		broken,
	}

	stats, err := ComputeStatistics(schools, broken.ID)
	require.NoError(t, err)

	// nil fields average in as 0: (40+0)/2 = 20, (200+0)/2 = 100.
	assert.Equal(t, int64(20), stats.AverageDrivingLessonPrice)
	assert.Equal(t, int64(100), stats.AverageBaseFee)
	// A nil lesson price sorts as 0, cheapest in the city.
	assert.Equal(t, 1, stats.CityRank)
}

func TestRoundedMean(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		sum      int64
		count    int
		expected int64
	}{
		{"exact", 90, 3, 30},
		{"half rounds up", 61, 2, 31},
		{"below half rounds down", 122, 5, 24},
		{"zero sum", 0, 4, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, roundedMean(tc.sum, tc.count))
		})
	}
}
