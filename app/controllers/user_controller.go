package controllers

import (
	"net/http"

	"quill/app/models"
	"quill/app/services"
	"quill/logging"

	"github.com/gorilla/mux"
)

// UserController handles registration, verification and login.
type UserController struct {
	responder
	accounts *services.AccountService
}

func NewUserController(accounts *services.AccountService, log logging.Logger) *UserController {
	return &UserController{responder: responder{log: log}, accounts: accounts}
}

// Signup registers a user and mails a verification link.
func (uc *UserController) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !uc.decodeJSON(w, r, &req) {
		return
	}

	if _, err := uc.accounts.Signup(r.Context(), req); err != nil {
		uc.sendServiceError(w, r, err)
		return
	}
	uc.sendMessage(w, http.StatusCreated, "User registered successfully. Please check your email to verify your account.")
}

// VerifyEmail consumes the token from the verification link.
func (uc *UserController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if _, err := uc.accounts.VerifyEmail(r.Context(), token); err != nil {
		uc.sendServiceError(w, r, err)
		return
	}
	uc.sendMessage(w, http.StatusOK, "Email verified successfully.")
}

// Login exchanges credentials for a bearer token.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !uc.decodeJSON(w, r, &req) {
		return
	}

	result, err := uc.accounts.Login(r.Context(), req)
	if err != nil {
		uc.sendServiceError(w, r, err)
		return
	}
	uc.sendJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}
