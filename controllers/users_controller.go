package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/etudify/etudify-backend/dto"
	"github.com/etudify/etudify-backend/store"
	"github.com/etudify/etudify-backend/utils"
)

// POST /api/auth/password
// Changing the credential ends the current session: the stored refresh
// token is cleared and the cookie removed, so the client must log in
// again with the new password.
func (ac *AuthController) ChangeMyPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ChangeMyPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

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
			log.Print("password lookup failed: ", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "connection failed"})
			return
		}

		if err := utils.CheckPassword(user.PasswordHash, body.CurrentPassword); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
			return
		}

		newHash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		if err := ac.users.UpdatePassword(c.Request.Context(), user.ID.Hex(), newHash); err != nil {
			log.Print("password update failed: ", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "connection failed"})
			return
		}

		if err := ac.users.UpdateRefreshToken(c.Request.Context(), user.ID.Hex(), nil); err != nil {
			log.Print("session revocation failed: ", err.Error())
		}
		utils.ClearRefreshCookie(c, ac.cookies)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
