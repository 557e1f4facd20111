package market

import (
	"sort"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/pricing"
)

// RankedSchool is a school annotated with its computed total price and
// display position. Instances are recomputed per request and never persisted.
type RankedSchool struct {
	School     domain.School `json:"school"`
	TotalPrice int64         `json:"total_price"`
}

// RankForDisplay computes the public comparison order for one city's schools
// at one experience level.
//
// Totals are computed leniently: a missing or negative monetary field counts
// as 0, so a single malformed listing degrades instead of breaking the whole
// city's comparison page. Sorting is ascending by total price with premium
// schools placed strictly before non-premium ones regardless of price; ties
// within a tier preserve input order (the sort is stable).
//
// Empty input yields an empty slice. The only error condition is an unknown
// experience level.
func RankForDisplay(schools []domain.School, level pricing.ExperienceLevel) ([]RankedSchool, error) {
	reqs, err := pricing.RequirementsFor(level)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedSchool, 0, len(schools))
	for _, school := range schools {
		profile := lenientProfile(&school)
		ranked = append(ranked, RankedSchool{
			School:     school,
			TotalPrice: profile.Total(reqs),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.School.IsPremium != b.School.IsPremium {
			return a.School.IsPremium
		}
		return a.TotalPrice < b.TotalPrice
	})

	return ranked, nil
}

// lenientProfile builds a price profile for aggregate use, defaulting every
// missing or negative monetary field to 0. This is deliberately the opposite
// of pricing.ProfileForSchool's strict contract; see ComputeStatistics for
// the same policy on averages.
func lenientProfile(school *domain.School) pricing.Profile {
	return pricing.Profile{
		BaseFee:            valueOrZero(school.BaseFee),
		DrivingLessonPrice: valueOrZero(school.DrivingLessonPrice),
		TheoryExamFee:      valueOrZero(school.TheoryExamFee),
		PracticalExamFee:   valueOrZero(school.PracticalExamFee),
	}
}

// valueOrZero dereferences a monetary field, treating nil and negative
// values as 0.
func valueOrZero(v *int64) int64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
