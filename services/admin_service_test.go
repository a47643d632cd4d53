package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return gdb, mock
}

func adminRows(email, passwordHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "password"}).
		AddRow(1, "Asha", "Rao", email, "9999999999", passwordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT \\* FROM `admins`").
		WillReturnRows(adminRows("asha@example.com", "irrelevant"))

	_, err := NewAdminService(db).Register("Asha", "Rao", "Asha@Example.com", "9999999999", "secret")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterCreatesAdmin(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `admins`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `admins`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	admin, err := NewAdminService(db).Register("Asha", "Rao", "  Asha@Example.com ", "9999999999", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.Email != "asha@example.com" {
		t.Fatalf("email not normalized, got %q", admin.Email)
	}
	if admin.Password == "secret" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("secret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("SELECT \\* FROM `admins`").
		WillReturnRows(adminRows("asha@example.com", string(hash)))
	mock.ExpectQuery("SELECT \\* FROM `admins`").
		WillReturnRows(adminRows("asha@example.com", string(hash)))

	svc := NewAdminService(db)

	admin, err := svc.Login("asha@example.com", "secret")
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if admin.ID != 1 {
		t.Fatalf("unexpected admin id %d", admin.ID)
	}

	if _, err := svc.Login("asha@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `admins`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := NewAdminService(db).Login("nobody@example.com", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
