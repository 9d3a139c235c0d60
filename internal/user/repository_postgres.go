package user

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository persists participants in the users table. The address
// field group lives in a jsonb column; email uniqueness is enforced
// case-insensitively by a unique index on lower(email).
type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listUsersQuery = `
		SELECT id, email, password, about_me, address, birthdate, current_step, created_at, updated_at
		FROM users
		ORDER BY created_at
	`
	getUserByEmailQuery = `
		SELECT id, email, password, about_me, address, birthdate, current_step, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)
	`
	insertUserQuery = `
		INSERT INTO users (id, email, password, about_me, address, birthdate, current_step, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	updateUserQuery = `
		UPDATE users
		SET email = $1,
			password = $2,
			about_me = $3,
			address = $4,
			birthdate = $5,
			current_step = $6,
			updated_at = $7
		WHERE lower(email) = lower($8)
	`
	deleteUserQuery = `DELETE FROM users WHERE lower(email) = lower($1)`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByEmailQuery, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	addressRaw, err := json.Marshal(u.Address)
	if err != nil {
		return User{}, err
	}

	_, err = r.db.Exec(
		insertUserQuery,
		u.ID,
		u.Email,
		u.Password,
		u.AboutMe,
		addressRaw,
		birthdateArg(u.Birthdate),
		u.CurrentStep,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(email string, u User) (User, error) {
	addressRaw, err := json.Marshal(u.Address)
	if err != nil {
		return User{}, err
	}

	res, err := r.db.Exec(
		updateUserQuery,
		u.Email,
		u.Password,
		u.AboutMe,
		addressRaw,
		birthdateArg(u.Birthdate),
		u.CurrentStep,
		u.UpdatedAt,
		email,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *PostgresRepository) Delete(email string) error {
	res, err := r.db.Exec(deleteUserQuery, email)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row rowScanner) (User, error) {
	var (
		u          User
		addressRaw []byte
		birthdate  sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.AboutMe, &addressRaw, &birthdate, &u.CurrentStep, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, err
	}

	if len(addressRaw) > 0 {
		if err := json.Unmarshal(addressRaw, &u.Address); err != nil {
			return User{}, err
		}
	}
	if birthdate.Valid {
		t := birthdate.Time
		u.Birthdate = &t
	}
	return u, nil
}

func birthdateArg(birthdate *time.Time) any {
	if birthdate == nil {
		return nil
	}
	return *birthdate
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
