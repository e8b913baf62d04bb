package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/cryptox"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/auth"
	"github.com/dmitrijs2005/listkeeper/internal/server/config"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	projectsrepo "github.com/dmitrijs2005/listkeeper/internal/server/repositories/projects"
	usersrepo "github.com/dmitrijs2005/listkeeper/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager, limiter *auth.LoginLimiter) *UserService {
	t.Helper()
	if limiter == nil {
		limiter = auth.NewLoginLimiter(5, 300*time.Second, nil)
	}
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
	}
	return NewUserService(db, rm, limiter, cfg)
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	existsOut bool
	existsErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}
func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeUsersRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existsOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakeProjectsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Projects(db dbx.DBTX) projectsrepo.Repository { return m.p }

// --- Register ---

func TestRegister_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := newUserService(t, db, rm, nil)

	user, token, err := s.Register(context.Background(), "alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID != 1 || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash != cryptox.HashPassword("secret1") {
		t.Fatalf("password digest mismatch: %q", user.PasswordHash)
	}
	got, err := auth.GetUserIDFromToken(token, []byte("k"))
	if err != nil || got != 1 {
		t.Fatalf("token does not resolve to user: id=%d err=%v", got, err)
	}
}

func TestRegister_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := newUserService(t, db, rm, nil)

	tests := []struct {
		name     string
		username string
		email    string
		password string
		field    string
	}{
		{"short username", "ab", "a@b.com", "secret1", "username"},
		{"bad char in username", "a b c", "a@b.com", "secret1", "username"},
		{"no at sign", "alice", "nobody", "secret1", "email"},
		{"no tld", "alice", "a@b", "secret1", "email"},
		{"short password", "alice", "a@b.com", "12345", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Register(context.Background(), tt.username, tt.email, tt.password)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
			var ve *common.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Fatalf("want field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestRegister_Conflict(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{existsOut: true}}
	s := newUserService(t, db, rm, nil)

	_, _, err := s.Register(context.Background(), "alice", "alice@example.com", "secret1")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestRegister_ExistsCheckFails(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{existsErr: errors.New("db down")}}
	s := newUserService(t, db, rm, nil)

	_, _, err := s.Register(context.Background(), "alice", "alice@example.com", "secret1")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

// --- Login ---

func storedUser() *models.User {
	return &models.User{
		ID:           7,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: cryptox.HashPassword("secret1"),
	}
}

func TestLogin_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{getOut: storedUser()}}
	s := newUserService(t, db, rm, nil)

	user, token, err := s.Login(context.Background(), "1.2.3.4", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("unexpected user: %+v", user)
	}
	got, err := auth.GetUserIDFromToken(token, []byte("k"))
	if err != nil || got != 7 {
		t.Fatalf("token does not resolve to user: id=%d err=%v", got, err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{getOut: storedUser()}}
	s := newUserService(t, db, rm, nil)

	_, _, err := s.Login(context.Background(), "1.2.3.4", "alice@example.com", "wrong")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound}}
	s := newUserService(t, db, rm, nil)

	_, _, err := s.Login(context.Background(), "1.2.3.4", "ghost@example.com", "secret1")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_RepoError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: errors.New("db down")}}
	s := newUserService(t, db, rm, nil)

	_, _, err := s.Login(context.Background(), "1.2.3.4", "alice@example.com", "secret1")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

func TestLogin_LockedOutAfterRepeatedFailures(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	now := time.Now()
	limiter := auth.NewLoginLimiter(5, 300*time.Second, func() time.Time { return now })

	rm := &fakeRepoManager{u: &fakeUsersRepo{getOut: storedUser()}}
	s := newUserService(t, db, rm, limiter)

	for i := 0; i < 5; i++ {
		_, _, err := s.Login(context.Background(), "1.2.3.4", "alice@example.com", "wrong")
		if !errors.Is(err, common.ErrorUnauthorized) {
			t.Fatalf("attempt %d: want common.ErrorUnauthorized, got %v", i, err)
		}
	}

	// sixth attempt is rejected even with the right password
	_, _, err := s.Login(context.Background(), "1.2.3.4", "alice@example.com", "secret1")
	if !errors.Is(err, common.ErrorRateLimited) {
		t.Fatalf("want common.ErrorRateLimited, got %v", err)
	}
	var rle *common.RateLimitError
	if !errors.As(err, &rle) || rle.RetryAfter <= 0 || rle.RetryAfter > 300*time.Second {
		t.Fatalf("unexpected retry-after: %v", err)
	}

	// a different client key is unaffected
	if _, _, err := s.Login(context.Background(), "5.6.7.8", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("other client blocked: %v", err)
	}
}

func TestLogin_LockoutExpiresWithWindow(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	now := time.Now()
	limiter := auth.NewLoginLimiter(5, 300*time.Second, func() time.Time { return now })

	rm := &fakeRepoManager{u: &fakeUsersRepo{getOut: storedUser()}}
	s := newUserService(t, db, rm, limiter)

	for i := 0; i < 5; i++ {
		s.Login(context.Background(), "1.2.3.4", "alice@example.com", "wrong")
	}
	if _, _, err := s.Login(context.Background(), "1.2.3.4", "alice@example.com", "secret1"); !errors.Is(err, common.ErrorRateLimited) {
		t.Fatalf("want common.ErrorRateLimited, got %v", err)
	}

	now = now.Add(301 * time.Second)

	if _, _, err := s.Login(context.Background(), "1.2.3.4", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("want success after window, got %v", err)
	}
}

func TestLogin_SuccessResetsFailures(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	limiter := auth.NewLoginLimiter(5, 300*time.Second, nil)

	rm := &fakeRepoManager{u: &fakeUsersRepo{getOut: storedUser()}}
	s := newUserService(t, db, rm, limiter)

	for i := 0; i < 4; i++ {
		s.Login(context.Background(), "1.2.3.4", "alice@example.com", "wrong")
	}
	if _, _, err := s.Login(context.Background(), "1.2.3.4", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("Login error: %v", err)
	}

	// the slate is clean, four more failures do not lock the key
	for i := 0; i < 4; i++ {
		s.Login(context.Background(), "1.2.3.4", "alice@example.com", "wrong")
	}
	if _, _, err := s.Login(context.Background(), "1.2.3.4", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("want success, got %v", err)
	}
}
