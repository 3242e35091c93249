package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/etudify/etudify-backend/dto"
	"github.com/etudify/etudify-backend/models"
	"github.com/etudify/etudify-backend/store"
	"github.com/etudify/etudify-backend/token"
	"github.com/etudify/etudify-backend/utils"
)

// AuthController handles account creation, credential verification and
// session teardown. The user store and token manager are injected so
// handlers never reach into ambient state.
type AuthController struct {
	users   store.UserStore
	tokens  *token.Manager
	cookies utils.CookieOptions
}

func NewAuthController(users store.UserStore, tokens *token.Manager, cookies utils.CookieOptions) *AuthController {
	return &AuthController{users: users, tokens: tokens, cookies: cookies}
}

// POST /api/auth/signup
func (ac *AuthController) Signup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.SignupDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		email := utils.NormalizeEmail(body.Email)

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		now := time.Now().UTC()
		user := models.User{
			Firstname:    body.Firstname,
			Lastname:     body.Lastname,
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := ac.users.Create(c.Request.Context(), &user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				c.JSON(http.StatusConflict, gin.H{"error": "a user with this email is already registered"})
				return
			}
			log.Print("signup failed: ", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "connection failed"})
			return
		}

		accessToken, refreshToken, err := ac.tokens.IssueTokenPair(c.Request.Context(), user.ID.Hex(), user.Email)
		if err != nil {
			log.Print("token issuance failed: ", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
			return
		}

		utils.SetRefreshCookie(c, ac.cookies, refreshToken)
		c.JSON(http.StatusOK, gin.H{
			"isLoggedIn":  true,
			"message":     fmt.Sprintf("account created and logged in as '%s - %s %s'", user.Email, user.Firstname, user.Lastname),
			"user":        dto.NewUserView(&user),
			"accessToken": accessToken,
		})
	}
}

// POST /api/auth/login
func (ac *AuthController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := ac.users.FindByEmail(c.Request.Context(), utils.NormalizeEmail(body.Email))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			log.Print("login lookup failed: ", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "connection failed"})
			return
		}

		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		// Overwrites any previously stored refresh token, which ends the
		// earlier session even if its token has not expired yet.
		accessToken, refreshToken, err := ac.tokens.IssueTokenPair(c.Request.Context(), user.ID.Hex(), user.Email)
		if err != nil {
			log.Print("token issuance failed: ", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
			return
		}

		utils.SetRefreshCookie(c, ac.cookies, refreshToken)
		c.JSON(http.StatusOK, gin.H{
			"isLoggedIn":  true,
			"message":     fmt.Sprintf("logged in as '%s - %s %s'", user.Email, user.Firstname, user.Lastname),
			"user":        dto.NewUserView(user),
			"accessToken": accessToken,
		})
	}
}

// POST /api/auth/logout
func (ac *AuthController) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken := utils.RefreshCookie(c)
		if refreshToken == "" {
			c.JSON(http.StatusOK, gin.H{"isLoggedIn": false, "message": "already logged out"})
			return
		}

		if err := ac.tokens.Revoke(c.Request.Context(), refreshToken); err != nil {
			log.Print("logout failed: ", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "connection failed"})
			return
		}

		utils.ClearRefreshCookie(c, ac.cookies)
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false, "message": "logged out"})
	}
}

// GET /api/auth/me
func (ac *AuthController) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get("userID")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		user, err := ac.users.FindByID(c.Request.Context(), userID.(string))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
				return
			}
			log.Print("me lookup failed: ", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "connection failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": dto.NewUserView(user)})
	}
}
