package user

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listUsersQuery = `
		SELECT id, first_name, last_name, email, gender, birth_date, created_at
		FROM users
		ORDER BY id
	`
	getUserByIDQuery = `
		SELECT id, first_name, last_name, email, gender, birth_date, created_at
		FROM users
		WHERE id = $1
	`
	getUserByEmailQuery = `
		SELECT id, first_name, last_name, email, gender, birth_date, created_at
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (first_name, last_name, email, gender, birth_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	updateUserQuery = `
		UPDATE users
		SET first_name = $1,
			last_name = $2,
			email = $3,
			gender = $4,
			birth_date = $5
		WHERE id = $6
	`
	deleteUserQuery = `DELETE FROM users WHERE id = $1`
	existsUserQuery = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(user *User) (int64, error) {
	var id int64
	err := r.db.QueryRow(
		insertUserQuery,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Gender.String(),
		birthDateArg(user.BirthDate),
		user.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PostgresRepository) GetByID(id int64) (*User, error) {
	row := r.db.QueryRow(getUserByIDQuery, id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(email string) (*User, error) {
	row := r.db.QueryRow(getUserByEmailQuery, email)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) List() ([]*User, error) {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *PostgresRepository) Update(user *User) error {
	result, err := r.db.Exec(
		updateUserQuery,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Gender.String(),
		birthDateArg(user.BirthDate),
		user.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(id int64) error {
	result, err := r.db.Exec(deleteUserQuery, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Exists(id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(existsUserQuery, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// birthDateArg maps an absent birth date to a NULL column, never to a
// sentinel date.
func birthDateArg(birthDate *time.Time) any {
	if birthDate == nil {
		return nil
	}
	return *birthDate
}

func scanUser(scanner rowScanner) (*User, error) {
	user := &User{}
	var gender string
	var birthDate sql.NullTime

	if err := scanner.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&gender,
		&birthDate,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	parsed, err := ParseGender(gender)
	if err != nil {
		return nil, err
	}
	user.Gender = parsed

	if birthDate.Valid {
		d := birthDate.Time
		user.BirthDate = &d
	}

	return user, nil
}
