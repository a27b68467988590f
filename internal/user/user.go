package user

import (
	"fmt"
	"strings"
	"time"
)

// Gender is a closed set; anything outside the three defined values is
// rejected at parse time and again on entity construction.
type Gender int

const (
	GenderMale Gender = iota
	GenderFemale
	GenderOther
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "MALE"
	case GenderFemale:
		return "FEMALE"
	case GenderOther:
		return "OTHER"
	default:
		return fmt.Sprintf("Gender(%d)", int(g))
	}
}

func (g Gender) valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ParseGender maps a wire token to its Gender value.
func ParseGender(token string) (Gender, error) {
	switch token {
	case "MALE":
		return GenderMale, nil
	case "FEMALE":
		return GenderFemale, nil
	case "OTHER":
		return GenderOther, nil
	default:
		return 0, &ValidationError{Message: fmt.Sprintf("gender must be one of MALE, FEMALE, OTHER, got %q", token)}
	}
}

// ValidationError reports a single violated entity rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Gender    Gender
	BirthDate *time.Time
	CreatedAt time.Time
}

// Patch carries an optional new value per mutable field. A nil pointer means
// the field was not supplied and is left unchanged; there is no way to clear
// an already-set birth date through a patch.
type Patch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Gender    *Gender
	BirthDate *time.Time
}

// New validates and builds a User. Fields are checked in a fixed order
// (firstName, lastName, email, gender, birthDate) and the first violation is
// returned as a *ValidationError. CreatedAt is stamped once, in UTC.
func New(firstName, lastName, email string, gender Gender, birthDate *time.Time) (*User, error) {
	if err := validate(firstName, lastName, email, gender, birthDate); err != nil {
		return nil, err
	}

	return &User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Gender:    gender,
		BirthDate: birthDate,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Update replaces every mutable field, re-validating exactly as New does.
// On a validation failure the entity is left untouched.
func (u *User) Update(firstName, lastName, email string, gender Gender, birthDate *time.Time) error {
	if err := validate(firstName, lastName, email, gender, birthDate); err != nil {
		return err
	}

	u.FirstName = firstName
	u.LastName = lastName
	u.Email = email
	u.Gender = gender
	u.BirthDate = birthDate
	return nil
}

// Patch applies only the supplied fields. All supplied fields are validated
// before any assignment happens, so a failure never leaves the entity
// half-mutated. A Patch with no fields set is a no-op.
func (u *User) Patch(p Patch) error {
	if p.FirstName != nil {
		if err := validateText("firstName", *p.FirstName); err != nil {
			return err
		}
	}
	if p.LastName != nil {
		if err := validateText("lastName", *p.LastName); err != nil {
			return err
		}
	}
	if p.Email != nil {
		if err := validateText("email", *p.Email); err != nil {
			return err
		}
	}
	if p.Gender != nil && !p.Gender.valid() {
		return &ValidationError{Message: "gender must be one of MALE, FEMALE, OTHER"}
	}
	if err := validateBirthDate(p.BirthDate); err != nil {
		return err
	}

	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.BirthDate != nil {
		u.BirthDate = p.BirthDate
	}
	return nil
}

func validate(firstName, lastName, email string, gender Gender, birthDate *time.Time) error {
	if err := validateText("firstName", firstName); err != nil {
		return err
	}
	if err := validateText("lastName", lastName); err != nil {
		return err
	}
	if err := validateText("email", email); err != nil {
		return err
	}
	if !gender.valid() {
		return &ValidationError{Message: "gender must be one of MALE, FEMALE, OTHER"}
	}
	return validateBirthDate(birthDate)
}

func validateText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Message: field + " must not be empty"}
	}
	return nil
}

func validateBirthDate(birthDate *time.Time) error {
	if birthDate == nil {
		return nil
	}
	if dateOnly(*birthDate).After(dateOnly(time.Now().UTC())) {
		return &ValidationError{Message: "birthDate must not be in the future"}
	}
	return nil
}

// dateOnly drops the time-of-day component so birth dates compare at
// calendar-day precision.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
