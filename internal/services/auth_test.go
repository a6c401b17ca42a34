package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/modulehub/modulehub-backend/internal/apierr"
	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/repos"
	"github.com/modulehub/modulehub-backend/internal/types"
)

func newAuthServiceForTest(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}, &types.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	log := logger.NewNop()
	userRepo := repos.NewUserRepo(db, log)
	sessionRepo := repos.NewSessionRepo(db, log)
	as := NewAuthService(db, log, userRepo, sessionRepo, nil, "test-secret", time.Hour)
	return as, db
}

func mustLogin(t *testing.T, as AuthService, email, password string) (*types.User, string) {
	t.Helper()
	user, token, err := as.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("Login(%s): %v", email, err)
	}
	return user, token
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	as, _ := newAuthServiceForTest(t)
	err := as.Register(context.Background(), "a@b.com", "short", "Alice")
	if ae := apierr.From(err); ae.Status != 400 {
		t.Fatalf("status=%d, want 400", ae.Status)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	as, _ := newAuthServiceForTest(t)
	ctx := context.Background()
	if err := as.Register(ctx, "dup@example.com", "password123", "First"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := as.Register(ctx, "DUP@example.com", "password123", "Second")
	if err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}
	if ae := apierr.From(err); ae.Msg != "User with this email already exists" {
		t.Fatalf("msg=%q", ae.Msg)
	}
}

func TestLoginNormalizesEmailAndReturnsToken(t *testing.T) {
	as, db := newAuthServiceForTest(t)
	ctx := context.Background()
	if err := as.Register(ctx, "  Casey@Example.com ", "password123", "Casey"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, token := mustLogin(t, as, "casey@EXAMPLE.com", "password123")
	if token == "" {
		t.Fatal("empty token")
	}
	if user.Email != "casey@example.com" {
		t.Fatalf("email=%q, want lowercased", user.Email)
	}
	if user.Role != types.RoleUser {
		t.Fatalf("role=%q, want USER", user.Role)
	}

	var count int64
	db.Model(&types.Session{}).Where("token = ?", token).Count(&count)
	if count != 1 {
		t.Fatalf("session rows for token=%d, want 1", count)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	as, _ := newAuthServiceForTest(t)
	ctx := context.Background()
	if err := as.Register(ctx, "casey@example.com", "password123", "Casey"); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, tc := range []struct {
		name, email, password string
	}{
		{name: "wrong_password", email: "casey@example.com", password: "wrongwrong"},
		{name: "unknown_email", email: "nobody@example.com", password: "password123"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := as.Login(ctx, tc.email, tc.password)
			if err == nil {
				t.Fatal("expected login to fail")
			}
			if ae := apierr.From(err); ae.Msg != "Invalid email or password" {
				t.Fatalf("msg=%q", ae.Msg)
			}
		})
	}
}

func TestAuthorizeOutcomes(t *testing.T) {
	as, db := newAuthServiceForTest(t)
	ctx := context.Background()
	if err := as.Register(ctx, "casey@example.com", "password123", "Casey"); err != nil {
		t.Fatalf("register: %v", err)
	}
	registered, token := mustLogin(t, as, "casey@example.com", "password123")

	t.Run("empty_token", func(t *testing.T) {
		_, _, err := as.Authorize(ctx, "", "")
		if ae := apierr.From(err); ae.Status != 401 || ae.Msg != "Authentication required" {
			t.Fatalf("got %+v", ae)
		}
	})

	t.Run("garbage_token", func(t *testing.T) {
		_, _, err := as.Authorize(ctx, "not.a.jwt", "")
		if ae := apierr.From(err); ae.Status != 401 {
			t.Fatalf("status=%d, want 401", ae.Status)
		}
	})

	t.Run("valid_token", func(t *testing.T) {
		user, session, err := as.Authorize(ctx, token, "")
		if err != nil {
			t.Fatalf("Authorize: %v", err)
		}
		if user.ID != registered.ID {
			t.Fatalf("user=%s, want %s", user.ID, registered.ID)
		}
		if session.Token != token {
			t.Fatal("session token not propagated")
		}
	})

	t.Run("role_mismatch", func(t *testing.T) {
		_, _, err := as.Authorize(ctx, token, types.RoleAdmin)
		if ae := apierr.From(err); ae.Status != 403 || ae.Msg != "Insufficient permissions" {
			t.Fatalf("got %+v", ae)
		}
	})

	t.Run("role_match", func(t *testing.T) {
		db.Model(&types.User{}).Where("id = ?", registered.ID).Update("role", types.RoleAdmin)
		defer db.Model(&types.User{}).Where("id = ?", registered.ID).Update("role", types.RoleUser)
		if _, _, err := as.Authorize(ctx, token, types.RoleAdmin); err != nil {
			t.Fatalf("Authorize as admin: %v", err)
		}
	})

	t.Run("expired_session", func(t *testing.T) {
		db.Model(&types.Session{}).Where("token = ?", token).
			Update("expires_at", time.Now().Add(-time.Minute))
		defer db.Model(&types.Session{}).Where("token = ?", token).
			Update("expires_at", time.Now().Add(time.Hour))
		_, _, err := as.Authorize(ctx, token, "")
		if ae := apierr.From(err); ae.Status != 401 {
			t.Fatalf("status=%d, want 401", ae.Status)
		}
	})

	t.Run("user_deleted", func(t *testing.T) {
		db.Where("id = ?", registered.ID).Delete(&types.User{})
		_, _, err := as.Authorize(ctx, token, "")
		if ae := apierr.From(err); ae.Status != 404 || ae.Msg != "User not found" {
			t.Fatalf("got %+v", ae)
		}
	})
}

func TestLogoutInvalidatesSession(t *testing.T) {
	as, _ := newAuthServiceForTest(t)
	ctx := context.Background()
	if err := as.Register(ctx, "casey@example.com", "password123", "Casey"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, token := mustLogin(t, as, "casey@example.com", "password123")

	if err := as.Logout(ctx, token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	_, _, err := as.Authorize(ctx, token, "")
	if ae := apierr.From(err); ae.Status != 401 {
		t.Fatalf("status=%d after logout, want 401", ae.Status)
	}
}
