package user

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM users").WithArgs("missing@example.com").WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByEmail("missing@example.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO users").WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = repo.Create(User{ID: "u1", Email: "a@b.com", Password: "abcdef", CurrentStep: 1})
	if err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateNoRowsAffected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = repo.Update("missing@example.com", User{Email: "missing@example.com"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListScansRecords(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now().UTC()
	birthdate := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "email", "password", "about_me", "address", "birthdate", "current_step", "created_at", "updated_at"}
	rows := sqlmock.NewRows(columns).
		AddRow("u1", "a@b.com", "abcdef", "hello", []byte(`{"street":"1 Main St","city":"Springfield","state":"IL","zip":"62701"}`), birthdate, 4, now, now).
		AddRow("u2", "c@d.com", "qwerty", "", []byte(`{"street":"","city":"","state":"","zip":""}`), nil, 1, now, now)
	mock.ExpectQuery("FROM users").WillReturnRows(rows)

	users, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Address.City != "Springfield" {
		t.Fatalf("address not unmarshalled: %+v", users[0].Address)
	}
	if users[0].Birthdate == nil || !users[0].Birthdate.Equal(birthdate) {
		t.Fatalf("birthdate not scanned: %v", users[0].Birthdate)
	}
	if users[1].Birthdate != nil {
		t.Fatalf("expected nil birthdate, got %v", users[1].Birthdate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM users").WithArgs("missing@example.com").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete("missing@example.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
