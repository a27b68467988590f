package user

import (
	"fmt"
	"time"
)

// Wire format for the optional birth date. Absence is a JSON null or a
// missing field, never a sentinel date.
const dateLayout = "2006-01-02"

type createRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Gender    string  `json:"gender"`
	BirthDate *string `json:"birthDate"`
}

type patchRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birthDate"`
}

// Response is the wire representation of a user.
type Response struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Gender    string  `json:"gender"`
	BirthDate *string `json:"birthDate"`
}

func (req createRequest) toInput() (Input, error) {
	gender, err := ParseGender(req.Gender)
	if err != nil {
		return Input{}, err
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return Input{}, err
	}

	return Input{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Gender:    gender,
		BirthDate: birthDate,
	}, nil
}

func (req patchRequest) toPatch() (Patch, error) {
	p := Patch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	if req.Gender != nil {
		gender, err := ParseGender(*req.Gender)
		if err != nil {
			return Patch{}, err
		}
		p.Gender = &gender
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return Patch{}, err
	}
	p.BirthDate = birthDate

	return p, nil
}

func toResponse(u *User) Response {
	return Response{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Gender:    u.Gender.String(),
		BirthDate: formatDate(u.BirthDate),
	}
}

func toResponseList(users []*User) []Response {
	responses := make([]Response, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}
	return responses
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}

	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("birthDate must use the %s format, got %q", dateLayout, *value)}
	}
	return &t, nil
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}

	formatted := value.Format(dateLayout)
	return &formatted
}
