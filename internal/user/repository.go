package user

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Repository is the persistence port the service depends on. GetByID and
// GetByEmail report an absent row as ErrNotFound, never as a nil user.
type Repository interface {
	Create(user *User) (int64, error)
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	List() ([]*User, error)
	Update(user *User) error
	Delete(id int64) error
	Exists(id int64) (bool, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	users  []*User
	nextID int64
}

func NewInMemoryRepository(seed []*User) *InMemoryRepository {
	repo := &InMemoryRepository{
		users:  make([]*User, 0, len(seed)),
		nextID: 1,
	}

	var maxID int64
	for _, u := range seed {
		copied := *u
		repo.users = append(repo.users, &copied)
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) Create(user *User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *user
	if copied.ID == 0 {
		copied.ID = r.nextID
		r.nextID++
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}

	r.users = append(r.users, &copied)
	return copied.ID, nil
}

func (r *InMemoryRepository) GetByID(id int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}

	return nil, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}

	return nil, ErrNotFound
}

func (r *InMemoryRepository) List() ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

func (r *InMemoryRepository) Update(user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == user.ID {
			copied := *user
			r.users[i] = &copied
			return nil
		}
	}

	return ErrNotFound
}

func (r *InMemoryRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func (r *InMemoryRepository) Exists(id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return true, nil
		}
	}
	return false, nil
}
