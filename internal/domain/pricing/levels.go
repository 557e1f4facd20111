package pricing

import "errors"

// ErrUnknownExperienceLevel is returned when a level key is not part of the
// closed enumeration. The set of valid keys is fixed configuration, so this
// indicates a programming error in the caller, never user input.
var ErrUnknownExperienceLevel = errors.New("unknown experience level")

// ExperienceLevel is a student-declared category determining how many
// lessons and exam attempts the student is assumed to need.
type ExperienceLevel string

// The closed set of experience levels.
const (
	LevelBeginner        ExperienceLevel = "beginner"
	LevelSomeExperience  ExperienceLevel = "someExperience"
	LevelAdvanced        ExperienceLevel = "advanced"
	LevelVeryExperienced ExperienceLevel = "veryExperienced"
)

// Requirements holds the assumed lesson and exam counts for one level.
type Requirements struct {
	DrivingLessons int
	TheoryExams    int
	PracticalExams int
}

// levelTable is process-wide immutable configuration. The values are part of
// the public compatibility contract and must not change between releases.
// There is deliberately no mutation path: the map is unexported and only
// copies of its values leave this package.
var levelTable = map[ExperienceLevel]Requirements{
	LevelBeginner:        {DrivingLessons: 30, TheoryExams: 2, PracticalExams: 2},
	LevelSomeExperience:  {DrivingLessons: 20, TheoryExams: 1, PracticalExams: 2},
	LevelAdvanced:        {DrivingLessons: 12, TheoryExams: 1, PracticalExams: 1},
	LevelVeryExperienced: {DrivingLessons: 6, TheoryExams: 1, PracticalExams: 1},
}

// RequirementsFor returns the requirement counts for the given level.
// Returns ErrUnknownExperienceLevel if the level is not in the enumeration.
func RequirementsFor(level ExperienceLevel) (Requirements, error) {
	reqs, ok := levelTable[level]
	if !ok {
		return Requirements{}, ErrUnknownExperienceLevel
	}
	return reqs, nil
}

// Levels returns all valid experience levels in ascending order of assumed
// experience, suitable for presentation-layer enumeration.
func Levels() []ExperienceLevel {
	return []ExperienceLevel{
		LevelBeginner,
		LevelSomeExperience,
		LevelAdvanced,
		LevelVeryExperienced,
	}
}

// IsValidLevel reports whether the given key is part of the enumeration.
func IsValidLevel(level ExperienceLevel) bool {
	_, ok := levelTable[level]
	return ok
}
