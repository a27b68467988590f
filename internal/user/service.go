package user

import (
	"errors"
	"time"
)

// Input carries the full set of mutable fields for create and full update.
type Input struct {
	FirstName string
	LastName  string
	Email     string
	Gender    Gender
	BirthDate *time.Time
}

// Service enforces the rules that span users: email uniqueness and existence
// checks. When several rules are violated at once the precedence is fixed:
// not-found first, then conflict, then validation. The uniqueness check here
// only produces a friendly conflict error; the authoritative guarantee is the
// unique constraint on the email column.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(in Input) (*User, error) {
	if _, err := s.repo.GetByEmail(in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	u, err := New(in.FirstName, in.LastName, in.Email, in.Gender, in.BirthDate)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(u)
	if err != nil {
		return nil, err
	}

	u.ID = id
	return u, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByEmail(email string) (*User, error) {
	return s.repo.GetByEmail(email)
}

func (s *Service) List() ([]*User, error) {
	return s.repo.List()
}

func (s *Service) Update(id int64, in Input) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.checkEmailOwner(in.Email, id); err != nil {
		return err
	}

	if err := u.Update(in.FirstName, in.LastName, in.Email, in.Gender, in.BirthDate); err != nil {
		return err
	}

	return s.repo.Update(u)
}

func (s *Service) Patch(id int64, p Patch) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if p.Email != nil {
		if err := s.checkEmailOwner(*p.Email, id); err != nil {
			return err
		}
	}

	if err := u.Patch(p); err != nil {
		return err
	}

	return s.repo.Update(u)
}

func (s *Service) Delete(id int64) error {
	exists, err := s.repo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	return s.repo.Delete(id)
}

// checkEmailOwner fails with ErrEmailTaken when the email is already held by
// a user other than id. Keeping the current email is not a conflict.
func (s *Service) checkEmailOwner(email string, id int64) error {
	owner, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if owner.ID != id {
		return ErrEmailTaken
	}
	return nil
}
