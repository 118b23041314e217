package controllers

import (
	"errors"
	"log"
	"net/http"

	"ecochat/pkg/token"
	"ecochat/store"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handler
func Register(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body credentials
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
			return
		}

		_, err := users.Register(body.Username, body.Password)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
		case errors.Is(err, store.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		case errors.Is(err, store.ErrUserExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		default:
			log.Printf("[auth] register error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during registration"})
		}
	}
}

// Login handler
func Login(users *store.Users, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body credentials
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
			return
		}
		if body.Username == "" || body.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
			return
		}

		user, err := users.Verify(body.Username, body.Password)
		if err != nil {
			if errors.Is(err, store.ErrInvalidCredentials) {
				// same message for unknown user and wrong password
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
				return
			}
			log.Printf("[auth] login error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during login"})
			return
		}

		tokenStr, err := tokens.Issue(user.ID)
		if err != nil {
			log.Printf("[auth] token issue error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during login"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": tokenStr, "username": user.Username})
	}
}

// Logout handler. Tokens are stateless, so there is nothing to
// invalidate server-side; the client discards its copy.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}
