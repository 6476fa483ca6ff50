package userControllers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/junaidrashid-git/fishparque-api/controllers/respond"
)

// POST /api/register
func RegisterHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Fail(c, "All fields are required")
			return
		}

		_, err := svc.Register(req)
		switch {
		case err == nil:
			respond.OK(c, gin.H{"message": "Registration successful! Please login."})
		case errors.Is(err, errors.NotValid):
			respond.Fail(c, "All fields are required")
		case errors.Is(err, errors.AlreadyExists):
			respond.Fail(c, "Email already registered")
		default:
			log.Printf("❌ Registration error: %v", err)
			respond.Fail(c, "Registration failed. Please try again.")
		}
	}
}

// POST /api/login
func LoginHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Fail(c, "Invalid email or password")
			return
		}

		profile, token, err := svc.Login(req)
		switch {
		case err == nil:
			respond.OK(c, gin.H{
				"message": "Login successful!",
				"user":    profile,
				"token":   token,
			})
		case errors.Is(err, errors.Unauthorized):
			respond.Fail(c, "Invalid email or password")
		default:
			log.Printf("❌ Login error: %v", err)
			respond.Fail(c, "Login failed. Please try again.")
		}
	}
}

// GET /api/admin/users
func GetAllUsers(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond.OK(c, gin.H{"users": svc.Profiles(c.Query("q"))})
	}
}
