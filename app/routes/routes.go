package routes

import (
	"encoding/json"
	"net/http"

	"quill/app/controllers"
	"quill/app/middleware"
	"quill/app/services"
	"quill/logging"

	"github.com/gorilla/mux"
)

// Deps are the handles the router needs. Limiter may be nil to disable
// rate limiting.
type Deps struct {
	Accounts    *services.AccountService
	Admins      *services.AdminService
	Posts       *services.PostService
	Comments    *services.CommentService
	Tokens      middleware.TokenVerifier
	Limiter     *middleware.RateLimiter
	CORSOrigins []string
	Log         logging.Logger
}

// SetupRoutes defines the application's routes and returns the handler
// with global middleware applied. The global chain wraps the router so it
// also covers preflight, 404 and 405 responses.
func SetupRoutes(d Deps) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method not allowed"})
	})

	userController := controllers.NewUserController(d.Accounts, d.Log)
	postController := controllers.NewPostController(d.Posts, d.Log)
	commentController := controllers.NewCommentController(d.Comments, d.Log)
	adminController := controllers.NewAdminController(d.Admins, d.Log)

	authenticated := middleware.Authenticate(d.Tokens)
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return authenticated(middleware.RequireAdmin(d.Admins)(h))
	}

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Users
	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("/signup", userController.Signup).Methods("POST")
	users.HandleFunc("/verify-email/{token}", userController.VerifyEmail).Methods("GET")
	users.HandleFunc("/login", userController.Login).Methods("POST")

	// Posts
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.Handle("/create", authenticated(http.HandlerFunc(postController.Create))).Methods("POST")
	posts.HandleFunc("/{postId}", postController.Show).Methods("GET")
	posts.Handle("/{postId}", authenticated(http.HandlerFunc(postController.Edit))).Methods("PUT")
	posts.Handle("/{postId}", authenticated(http.HandlerFunc(postController.Delete))).Methods("DELETE")

	// Comments
	comments := api.PathPrefix("/comments").Subrouter()
	comments.HandleFunc("/{postId}", commentController.Index).Methods("GET")
	comments.Handle("/{postId}", authenticated(http.HandlerFunc(commentController.Create))).Methods("POST")

	// Admins
	admins := api.PathPrefix("/admins").Subrouter()
	admins.HandleFunc("/login", adminController.Login).Methods("POST")
	admins.Handle("/add", adminOnly(adminController.Add)).Methods("POST")
	admins.Handle("/users", adminOnly(adminController.Users)).Methods("GET")

	var handler http.Handler = router
	handler = middleware.ContentTypeJSON(handler)
	if d.Limiter != nil {
		handler = d.Limiter.Middleware(handler)
	}
	handler = middleware.CORS(d.CORSOrigins)(handler)
	handler = middleware.Recoverer(d.Log)(handler)
	handler = middleware.Logger(d.Log)(handler)
	return handler
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
