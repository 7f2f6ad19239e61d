package api

import (
	"context"
	"errors"
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions

	"ledger_system/internal/domain" // Importing domain models
	"ledger_system/internal/store"  // Store errors
	"ledger_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Users stores login credentials
type Users interface {
	CreateUser(ctx context.Context, u *domain.User) error
	FindUser(ctx context.Context, account domain.AccountID) (*domain.User, error)
}

// Request struct for registration
type RegisterRequest struct {
	Account  string `json:"account" binding:"required"`  // Account identity must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

var accountPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,64}$`)

// isValidAccount checks the account identity is 3-64 letters, digits, '_' or '-'
func isValidAccount(account string) bool {
	return accountPattern.MatchString(account)
}

// isValidPassword checks if the password length is between 8 and 72 bytes
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 72 // bcrypt ignores bytes past 72
}

// RegisterHandler binds a password to an account identity. Registering grants
// no role; roles come only from the registry.
func RegisterHandler(users Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !isValidAccount(req.Account) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Account must be 3-64 letters, digits, '_' or '-'"})
			return
		}
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-72 characters"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{Account: domain.AccountID(req.Account), Password: string(hash)}
		if err := users.CreateUser(c.Request.Context(), &user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Account already exists"})
				return
			}
			logrus.WithFields(logrus.Fields{"account": req.Account, "error": err.Error()}).Error("Failed to register account")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register account"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Account registered successfully"})
	}
}

// LoginHandler authenticates an account and returns a JWT token
func LoginHandler(users Users, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.FindUser(c.Request.Context(), domain.AccountID(req.Account))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		token, err := utils.GenerateJWT(user.Account, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
