package controllers

import (
	"net/http"

	"quill/app/models"
	"quill/app/services"
	"quill/logging"
)

type AdminController struct {
	responder
	admins *services.AdminService
}

func NewAdminController(admins *services.AdminService, log logging.Logger) *AdminController {
	return &AdminController{responder: responder{log: log}, admins: admins}
}

func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !ac.decodeJSON(w, r, &req) {
		return
	}

	token, err := ac.admins.Login(r.Context(), req)
	if err != nil {
		ac.sendServiceError(w, r, err)
		return
	}
	ac.sendJSON(w, http.StatusOK, map[string]string{
		"message": "Admin login successful",
		"token":   token,
	})
}

// Add promotes a user. 201 when a record was created, 200 when the user
// already was an admin.
func (ac *AdminController) Add(w http.ResponseWriter, r *http.Request) {
	actorID, ok := ac.currentUser(w, r)
	if !ok {
		return
	}

	var req models.PromoteRequest
	if !ac.decodeJSON(w, r, &req) {
		return
	}

	admin, created, err := ac.admins.Promote(r.Context(), actorID, req.UserID)
	if err != nil {
		ac.sendServiceError(w, r, err)
		return
	}

	status, message := http.StatusOK, "User is already an admin"
	if created {
		status, message = http.StatusCreated, "Admin added successfully"
	}
	ac.sendJSON(w, status, map[string]interface{}{
		"message":  message,
		"newAdmin": admin,
	})
}

func (ac *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	actorID, ok := ac.currentUser(w, r)
	if !ok {
		return
	}

	users, err := ac.admins.ListUsers(r.Context(), actorID)
	if err != nil {
		ac.sendServiceError(w, r, err)
		return
	}
	ac.sendJSON(w, http.StatusOK, users)
}
