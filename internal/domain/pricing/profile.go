package pricing

import (
	"errors"
	"fmt"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
)

// ErrInvalidPriceProfile is returned when a school record is missing a
// monetary field or carries a negative value. The computation is undefined
// for such a school; callers must exclude or flag it rather than default.
var ErrInvalidPriceProfile = errors.New("invalid price profile")

// Profile holds a school's four unit prices in whole euros.
// All fields are non-negative once constructed via ProfileForSchool.
type Profile struct {
	BaseFee            int64
	DrivingLessonPrice int64
	TheoryExamFee      int64
	PracticalExamFee   int64
}

// ProfileForSchool builds a Profile from a school record under the strict
// contract: every monetary field must be present and non-negative.
// Returns ErrInvalidPriceProfile (wrapped with the offending field name)
// otherwise. This path serves a school's own price breakdown, where data
// corruption must surface immediately instead of being masked.
func ProfileForSchool(school *domain.School) (Profile, error) {
	fields := []struct {
		name  string
		value *int64
	}{
		{"base_fee", school.BaseFee},
		{"driving_lesson_price", school.DrivingLessonPrice},
		{"theory_exam_fee", school.TheoryExamFee},
		{"practical_exam_fee", school.PracticalExamFee},
	}

	for _, f := range fields {
		if f.value == nil {
			return Profile{}, fmt.Errorf("%w: %s is missing", ErrInvalidPriceProfile, f.name)
		}
		if *f.value < 0 {
			return Profile{}, fmt.Errorf("%w: %s is negative", ErrInvalidPriceProfile, f.name)
		}
	}

	return Profile{
		BaseFee:            *school.BaseFee,
		DrivingLessonPrice: *school.DrivingLessonPrice,
		TheoryExamFee:      *school.TheoryExamFee,
		PracticalExamFee:   *school.PracticalExamFee,
	}, nil
}

// Total computes the experience-level-adjusted estimated full cost:
//
//	baseFee + lessons*lessonPrice + theoryExams*theoryFee + practicalExams*practicalFee
//
// Exact integer arithmetic over whole euros; rounding, if any, belongs to
// presentation formatting.
func (p Profile) Total(reqs Requirements) int64 {
	return p.BaseFee +
		int64(reqs.DrivingLessons)*p.DrivingLessonPrice +
		int64(reqs.TheoryExams)*p.TheoryExamFee +
		int64(reqs.PracticalExams)*p.PracticalExamFee
}

// TotalForLevel computes the total price for one school at one experience
// level under the strict contract. Returns ErrInvalidPriceProfile if the
// school's price data is incomplete, or ErrUnknownExperienceLevel if the
// level key is not in the enumeration.
func TotalForLevel(school *domain.School, level ExperienceLevel) (int64, error) {
	reqs, err := RequirementsFor(level)
	if err != nil {
		return 0, err
	}

	profile, err := ProfileForSchool(school)
	if err != nil {
		return 0, err
	}

	return profile.Total(reqs), nil
}
