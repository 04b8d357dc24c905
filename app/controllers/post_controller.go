package controllers

import (
	"net/http"
	"strconv"

	"quill/app/models"
	"quill/app/services"
	"quill/logging"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	responder
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, log logging.Logger) *PostController {
	return &PostController{responder: responder{log: log}, postService: postService}
}

// Index lists posts, newest first. ?page and ?per_page select the window.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	posts, err := pc.postService.ListPosts(r.Context(), page, perPage)
	if err != nil {
		pc.sendServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"page":  page,
	})
}

// Show returns a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(r.Context(), mux.Vars(r)["postId"])
	if err != nil {
		pc.sendServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post owned by the caller
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := pc.currentUser(w, r)
	if !ok {
		return
	}

	var req models.CreatePostRequest
	if !pc.decodeJSON(w, r, &req) {
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), userID, req)
	if err != nil {
		pc.sendServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Post created successfully",
		"post":    post,
	})
}

// Edit handles editing an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := pc.currentUser(w, r)
	if !ok {
		return
	}

	var req models.EditPostRequest
	if !pc.decodeOptionalJSON(w, r, &req) {
		return
	}

	post, err := pc.postService.EditPost(r.Context(), userID, mux.Vars(r)["postId"], req)
	if err != nil {
		pc.sendServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post updated successfully",
		"post":    post,
	})
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pc.currentUser(w, r)
	if !ok {
		return
	}

	if err := pc.postService.DeletePost(r.Context(), userID, mux.Vars(r)["postId"]); err != nil {
		pc.sendServiceError(w, r, err)
		return
	}
	pc.sendMessage(w, http.StatusOK, "Post deleted successfully")
}
