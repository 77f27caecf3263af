package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopwarehouse/warehouse-api/internal/api/metrics"
	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
	"github.com/shopwarehouse/warehouse-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authPayload struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

func recordAuth(action string, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	metrics.AuthAttemptsTotal.WithLabelValues(action, result).Inc()
}

// RegisterCustomer creates a customer account and returns a session token.
//
// @Summary      Register a customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Customer credentials"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Failure      429   {object}  Envelope
// @Router       /auth/register/customer [post]
func (h *AuthHandler) RegisterCustomer(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.authService.RegisterCustomer(c.Request().Context(), req.Email, req.Password)
	recordAuth("register_customer", err)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, authPayload{User: user, Token: token}, "Customer registered successfully")
}

// RegisterEmployee creates an employee account on behalf of an admin.
//
// @Summary      Create an employee account
// @Tags         auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Employee credentials"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /auth/register/employee [post]
func (h *AuthHandler) RegisterEmployee(c echo.Context) error {
	return h.createStaff(c, domain.RoleEmployee, "Employee account created successfully")
}

// RegisterAdmin creates an admin account on behalf of an admin.
//
// @Summary      Create an admin account
// @Tags         auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Admin credentials"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /auth/register/admin [post]
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	return h.createStaff(c, domain.RoleAdmin, "Admin account created successfully")
}

func (h *AuthHandler) createStaff(c echo.Context, role domain.Role, message string) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.CreateStaffAccount(c.Request().Context(), actor, req.Email, req.Password, role)
	recordAuth("register_staff", err)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, authPayload{User: user}, message)
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      429   {object}  Envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	recordAuth("login", err)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, authPayload{User: user, Token: token}, "Login successful")
}

// Logout is acknowledged only; the client discards its token.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "Logout successful")
}

// Me returns the caller's profile.
//
// @Summary      Current user
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.authService.CurrentUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "")
}
