package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountService is what the signup/login endpoints need from the identity
// integration.
type AccountService interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
}

// AuthHandler serves the unprotected account endpoints.
type AuthHandler struct {
	accounts AccountService
	log      *zap.Logger
}

func NewAuthHandler(accounts AccountService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, log: log}
}

type credentialsPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Signup answers POST /signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var payload credentialsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password (6+ chars) are required"})
		return
	}

	uid, err := h.accounts.CreateAccount(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		h.log.Warn("signup failed", zap.String("email", payload.Email), zap.Error(err))
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"uid": uid})
}

// Login answers POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var payload credentialsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	token, err := h.accounts.SignIn(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"idToken": token})
}
