package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"chronotes/middleware"
	"chronotes/model"
	"chronotes/services"
	"chronotes/store"
)

type fakeAccountUsers struct {
	user    *model.User
	deleted []string
}

func (f *fakeAccountUsers) FindByID(ctx context.Context, userID string) (*model.User, error) {
	if f.user == nil || f.user.UserID != userID {
		return nil, store.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeAccountUsers) DeleteUser(ctx context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return nil
}

type fakeAccountSessions struct {
	ended []string
}

func (f *fakeAccountSessions) GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	return nil, nil
}

func (f *fakeAccountSessions) EndAllUserSessions(ctx context.Context, userID string) error {
	f.ended = append(f.ended, userID)
	return nil
}

func newAccountRouter(b store.Backend, userID string, deps AccountDeps) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("session_mode", middleware.ModeAuthenticated)
		c.Set("user_id", userID)
		c.Set("backend", b)
		c.Next()
	})
	router.DELETE("/api/auth/account", func(c *gin.Context) { DeleteAccountHandler(c, deps) })
	return router
}

func TestDeleteAccountHandler(t *testing.T) {
	hashed, err := services.HashPassword("Sup3r$ecretPass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	newFixture := func(t *testing.T) (*store.Memory, *fakeAccountUsers, *fakeAccountSessions, *gin.Engine) {
		t.Helper()
		mem := store.NewMemory()
		seedFolderAndNote(t, mem, "doomed content")
		users := &fakeAccountUsers{user: &model.User{UserID: "user-1", Username: "sam", Password: hashed}}
		sessions := &fakeAccountSessions{}
		router := newAccountRouter(mem, "user-1", AccountDeps{Users: users, Sessions: sessions})
		return mem, users, sessions, router
	}

	t.Run("wrong password is forbidden and deletes nothing", func(t *testing.T) {
		mem, users, sessions, router := newFixture(t)

		w, env := doRequest(t, router, http.MethodDelete, "/api/auth/account", map[string]string{"password": "not-it"})
		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403 (%s)", w.Code, env.Error)
		}
		if len(users.deleted) != 0 || len(sessions.ended) != 0 {
			t.Errorf("deleted = %v, ended = %v, want none", users.deleted, sessions.ended)
		}
		if notes, _ := mem.ListNotes(context.Background()); len(notes) != 1 {
			t.Errorf("notes = %d, want the seeded note intact", len(notes))
		}
	})

	t.Run("missing password is a bad request", func(t *testing.T) {
		_, users, _, router := newFixture(t)

		w, _ := doRequest(t, router, http.MethodDelete, "/api/auth/account", map[string]string{})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
		if len(users.deleted) != 0 {
			t.Errorf("deleted = %v, want none", users.deleted)
		}
	})

	t.Run("correct password wipes data, sessions and the account", func(t *testing.T) {
		mem, users, sessions, router := newFixture(t)

		w, env := doRequest(t, router, http.MethodDelete, "/api/auth/account", map[string]string{"password": "Sup3r$ecretPass"})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d (%s)", w.Code, env.Error)
		}
		if notes, _ := mem.ListNotes(context.Background()); len(notes) != 0 {
			t.Errorf("notes = %d, want 0 after deletion", len(notes))
		}
		if folders, _ := mem.ListFolders(context.Background()); len(folders) != 0 {
			t.Errorf("folders = %d, want 0 after deletion", len(folders))
		}
		if len(users.deleted) != 1 || users.deleted[0] != "user-1" {
			t.Errorf("deleted = %v, want [user-1]", users.deleted)
		}
		if len(sessions.ended) != 1 || sessions.ended[0] != "user-1" {
			t.Errorf("ended = %v, want [user-1]", sessions.ended)
		}
	})
}
