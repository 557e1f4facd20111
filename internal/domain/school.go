package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for School
var (
	ErrEmptySchoolID      = errors.New("school ID cannot be empty")
	ErrEmptySchoolAdminID = errors.New("school admin ID cannot be empty")
	ErrEmptySchoolName    = errors.New("school name cannot be empty")
	ErrEmptySchoolCity    = errors.New("school city cannot be empty")
	ErrNegativePrice      = errors.New("price cannot be negative")
)

// School represents a driving school's public listing record.
//
// The four monetary fields are pointers because a school may be created
// before its operator has published prices; a nil field means "not set".
// How a missing price is treated depends on the consumer: the pricing
// package rejects it, the market package defaults it to zero.
// All amounts are whole euros.
type School struct {
	ID      uuid.UUID `json:"id"`
	AdminID uuid.UUID `json:"admin_id"`

	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`

	// Public contact details, shown only for premium schools.
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
	Website     string `json:"website,omitempty"`

	// Pricing. BaseFee is the one-time enrollment fee (Grundgebühr).
	BaseFee            *int64 `json:"base_fee"`
	DrivingLessonPrice *int64 `json:"driving_lesson_price"`
	TheoryExamFee      *int64 `json:"theory_exam_fee"`
	PracticalExamFee   *int64 `json:"practical_exam_fee"`

	// IsPremium is set by the payment collaborator's webhook and grants
	// listing priority. It never affects price computation.
	IsPremium bool `json:"is_premium"`

	// IsPublished controls visibility on the public comparison surface.
	IsPublished bool `json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSchool creates a new School owned by the given admin.
// It generates a new UUID for the school ID, marks the school as published,
// and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewSchool(adminID uuid.UUID, name, address, city, postalCode string) (*School, error) {
	school := &School{
		ID:          uuid.New(),
		AdminID:     adminID,
		Name:        name,
		Address:     address,
		City:        city,
		PostalCode:  postalCode,
		IsPublished: true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := school.Validate(); err != nil {
		return nil, err
	}

	return school, nil
}

// Validate checks if the School has valid data.
// Returns an error if any field fails validation.
func (s *School) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySchoolID
	}

	if s.AdminID == uuid.Nil {
		return ErrEmptySchoolAdminID
	}

	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptySchoolName
	}

	if strings.TrimSpace(s.City) == "" {
		return ErrEmptySchoolCity
	}

	for _, price := range []*int64{s.BaseFee, s.DrivingLessonPrice, s.TheoryExamFee, s.PracticalExamFee} {
		if price != nil && *price < 0 {
			return ErrNegativePrice
		}
	}

	return nil
}

// SetPrices replaces all four monetary fields and updates the UpdatedAt
// timestamp. Returns ErrNegativePrice if any value is negative.
func (s *School) SetPrices(baseFee, drivingLessonPrice, theoryExamFee, practicalExamFee int64) error {
	for _, price := range []int64{baseFee, drivingLessonPrice, theoryExamFee, practicalExamFee} {
		if price < 0 {
			return ErrNegativePrice
		}
	}

	s.BaseFee = &baseFee
	s.DrivingLessonPrice = &drivingLessonPrice
	s.TheoryExamFee = &theoryExamFee
	s.PracticalExamFee = &practicalExamFee
	s.UpdatedAt = time.Now().UTC()
	return nil
}
