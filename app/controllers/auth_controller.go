package controllers

import (
	"encoding/json"
	"net/http"

	"agricare/app/services"
)

// AuthController handles HTTP requests for registration and login
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles creating a new account
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := ac.authService.Register(r.Context(), in)
	if err != nil {
		sendError(w, "Failed to register: "+err.Error(), statusFor(err))
		return
	}

	token, err := ac.authService.IssueToken(user)
	if err != nil {
		sendError(w, "Failed to issue token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Login handles signing in with email and password
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	token, user, err := ac.authService.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}
