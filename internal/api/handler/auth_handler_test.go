package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

func TestAuthHandler_RegisterCustomer_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.User{ID: 7, Email: email, Role: domain.RoleCustomer}, "token123", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(e, http.MethodPost, "/auth/register/customer",
		strings.NewReader(`{"email":"alice@example.com","password":"secret1"}`))

	if err := h.RegisterCustomer(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Customer registered successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	data := resp["data"].(map[string]any)
	if data["token"] != "token123" {
		t.Fatalf("expected token, got %v", data["token"])
	}
	user := data["user"].(map[string]any)
	if user["email"] != "alice@example.com" || user["role"] != "customer" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash must not be serialized")
	}
}

func TestAuthHandler_RegisterCustomer_UserExists(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return nil, "", domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newContext(e, http.MethodPost, "/auth/register/customer",
		strings.NewReader(`{"email":"bob@example.com","password":"secret1"}`))

	if err := h.RegisterCustomer(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_RegisterCustomer_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newContext(e, http.MethodPost, "/auth/register/customer", strings.NewReader("not-json"))
	if err := h.RegisterCustomer(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	c, _ = newContext(e, http.MethodPost, "/auth/register/customer", strings.NewReader(`{"email":"a@example.com"}`))
	err := h.RegisterCustomer(c)
	if !errors.Is(err, domain.ErrValidation) || !strings.Contains(err.Error(), "password is required") {
		t.Fatalf("expected missing password error, got %v", err)
	}
}

func TestAuthHandler_RegisterEmployee_PassesActorAndRole(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		staffFn: func(ctx context.Context, actor *domain.Identity, email, password string, role domain.Role) (*domain.User, error) {
			if actor == nil || actor.UserID != 1 || actor.Role != domain.RoleAdmin {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if role != domain.RoleEmployee {
				t.Fatalf("expected employee role, got %s", role)
			}
			return &domain.User{ID: 2, Email: email, Role: role}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(e, http.MethodPost, "/auth/register/employee",
		strings.NewReader(`{"email":"emp@example.com","password":"longenough"}`))
	withIdentity(c, 1, domain.RoleAdmin)

	if err := h.RegisterEmployee(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Employee account created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	data := resp["data"].(map[string]any)
	if _, ok := data["token"]; ok {
		t.Fatal("staff creation must not issue a token")
	}
}

func TestAuthHandler_RegisterAdmin_Forbidden(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		staffFn: func(ctx context.Context, actor *domain.Identity, email, password string, role domain.Role) (*domain.User, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newContext(e, http.MethodPost, "/auth/register/admin",
		strings.NewReader(`{"email":"adm@example.com","password":"longenough"}`))
	withIdentity(c, 3, domain.RoleEmployee)

	if err := h.RegisterAdmin(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAuthHandler_RegisterStaff_NoIdentity(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newContext(e, http.MethodPost, "/auth/register/admin",
		strings.NewReader(`{"email":"adm@example.com","password":"longenough"}`))

	if err := h.RegisterAdmin(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.User{ID: 1, Email: email, Role: domain.RoleAdmin}, "token123", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(e, http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"secret"}`))

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Login successful" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	data := resp["data"].(map[string]any)
	if data["token"] != "token123" {
		t.Fatalf("expected token, got %v", data["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newContext(e, http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"bad"}`))

	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) || !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newContext(e, http.MethodPost, "/auth/login", strings.NewReader("{"))
	if err := h.Login(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		currentFn: func(ctx context.Context, userID int64) (*domain.User, error) {
			if userID != 9 {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: 9, Email: "me@example.com", Role: domain.RoleEmployee}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(e, http.MethodPost, "/auth/logout", nil)
	withIdentity(c, 9, domain.RoleEmployee)
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if resp := decodeEnvelope(t, rec); resp["message"] != "Logout successful" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}

	c, rec = newContext(e, http.MethodGet, "/auth/me", nil)
	withIdentity(c, 9, domain.RoleEmployee)
	if err := h.Me(c); err != nil {
		t.Fatalf("me: %v", err)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["email"] != "me@example.com" {
		t.Fatalf("unexpected profile: %+v", data)
	}

	c, _ = newContext(e, http.MethodGet, "/auth/me", nil)
	withIdentity(c, 10, domain.RoleEmployee)
	if err := h.Me(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
