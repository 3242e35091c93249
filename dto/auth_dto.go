package dto

import (
	"time"

	"github.com/etudify/etudify-backend/models"
)

type SignupDTO struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserView is the public projection of a user record. It whitelists
// exactly the fields safe to serialize; credential material and token
// bookkeeping never appear here.
type UserView struct {
	ID        string    `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID.Hex(),
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
