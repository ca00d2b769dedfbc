package controllers

import (
	"net/http"

	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/pkg/bind"
	"github.com/hydroline/hydroline/pkg/response"
)

// AuthController handles registration, login and profile.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"nullable,min=7,max=20"`
}

// Register creates a customer account.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.auth.Register(req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks credentials and issues tokens.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, tokens, err := c.auth.Login(req.Email, req.Password)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"user":         user,
		"token":        tokens.Token,
		"refreshToken": tokens.RefreshToken,
	})
}

// Profile returns the authenticated user.
func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := c.auth.Profile(uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, user)
}
