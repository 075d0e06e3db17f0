package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var in services.SignupInput
	if !decode(w, r, &in) {
		return
	}
	user, err := c.service.Signup(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Created(w, user)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if !decode(w, r, &in) {
		return
	}
	pair, err := c.service.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, pair)
}

// Refresh takes the refresh token as a bearer credential.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	access, err := c.service.Refresh(r.Context(), middleware.BearerToken(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, map[string]string{"access": access})
}
