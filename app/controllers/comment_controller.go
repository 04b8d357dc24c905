package controllers

import (
	"net/http"

	"quill/app/models"
	"quill/app/services"
	"quill/logging"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	responder
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, log logging.Logger) *CommentController {
	return &CommentController{responder: responder{log: log}, commentService: commentService}
}

// Index handles listing all comments for a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	comments, err := cc.commentService.ListPostComments(r.Context(), mux.Vars(r)["postId"])
	if err != nil {
		cc.sendServiceError(w, r, err)
		return
	}
	cc.sendJSON(w, http.StatusOK, comments)
}

// Create handles creating a new comment
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.currentUser(w, r)
	if !ok {
		return
	}

	var req models.CommentRequest
	if !cc.decodeJSON(w, r, &req) {
		return
	}

	comment, err := cc.commentService.AddComment(r.Context(), userID, mux.Vars(r)["postId"], req)
	if err != nil {
		cc.sendServiceError(w, r, err)
		return
	}
	cc.sendJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Comment added successfully",
		"newComment": comment,
	})
}
