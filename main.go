package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"studelie/internal/common"
	"studelie/internal/wire"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	log.Println("Initializing application...")
	app, err := wire.InitializeApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := setupRouter(app)

	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", app.Config.Server.Host, app.Config.Server.Port),
		Handler:        router,
		ReadTimeout:    time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(app.Config.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Stop accepting broadcasts only after the handlers are drained.
	app.Notifications.Shutdown()

	if err := app.Mongo.Close(ctx); err != nil {
		log.Printf("MongoDB disconnect failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// setupRouter wires every HTTP surface onto one gorilla router. The
// auth endpoints and media downloads are public, everything else sits
// behind the session guard.
func setupRouter(app *wire.Application) *mux.Router {
	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(loggingMiddleware)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	router.HandleFunc("/media/{fileId}", app.MediaHandler.ServeFile).Methods("GET")

	auth := router.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", app.UserHandler.Register).Methods("POST")
	// Legacy clients still post to /signup.
	auth.HandleFunc("/signup", app.UserHandler.Register).Methods("POST")
	auth.HandleFunc("/login", app.UserHandler.Login).Methods("POST")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(common.AuthMiddleware(app.Tokens, app.Users))

	api.HandleFunc("/auth/verify", app.UserHandler.Verify).Methods("GET")
	api.HandleFunc("/profile", app.UserHandler.GetProfile).Methods("GET")
	api.HandleFunc("/profile", app.UserHandler.UpdateProfile).Methods("PUT")

	api.HandleFunc("/posts/tags/popular", app.FeedHandler.GetPopularTags).Methods("GET")
	api.HandleFunc("/posts/suggested", app.FeedHandler.GetSuggestedPosts).Methods("GET")
	api.HandleFunc("/posts", app.FeedHandler.GetPosts).Methods("GET")
	api.HandleFunc("/posts", app.FeedHandler.CreatePost).Methods("POST")
	api.HandleFunc("/posts/{postId}/reaction", app.FeedHandler.AddReaction).Methods("POST")
	// Older clients use the plural form.
	api.HandleFunc("/posts/{postId}/reactions", app.FeedHandler.AddReaction).Methods("POST")
	api.HandleFunc("/posts/{postId}/comment", app.FeedHandler.AddComment).Methods("POST")
	api.HandleFunc("/posts/{postId}/share", app.FeedHandler.SharePost).Methods("POST")
	api.HandleFunc("/posts/{postId}", app.FeedHandler.DeletePost).Methods("DELETE")

	api.HandleFunc("/friends", app.FriendHandler.GetFriends).Methods("GET")
	api.HandleFunc("/friends/suggestions", app.FriendHandler.GetSuggestions).Methods("GET")
	api.HandleFunc("/friends/{userId}", app.FriendHandler.AddFriend).Methods("POST")
	api.HandleFunc("/friends/{userId}", app.FriendHandler.RemoveFriend).Methods("DELETE")

	api.HandleFunc("/messages", app.ChatHandler.GetConversations).Methods("GET")
	api.HandleFunc("/messages", app.ChatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/messages/conversation/{userId}", app.ChatHandler.GetConversation).Methods("GET")

	api.HandleFunc("/courses", app.CourseHandler.ListCourses).Methods("GET")
	api.HandleFunc("/courses", app.CourseHandler.CreateCourse).Methods("POST")
	api.HandleFunc("/courses/{id}", app.CourseHandler.GetCourse).Methods("GET")
	api.HandleFunc("/courses/{id}", app.CourseHandler.UpdateCourse).Methods("PATCH")
	api.HandleFunc("/courses/{id}", app.CourseHandler.DeleteCourse).Methods("DELETE")
	api.HandleFunc("/courses/{id}/students", app.CourseHandler.AddStudent).Methods("POST")

	api.HandleFunc("/events", app.EventHandler.ListEvents).Methods("GET")
	api.HandleFunc("/events", app.EventHandler.CreateEvent).Methods("POST")
	api.HandleFunc("/events/{id}", app.EventHandler.GetEvent).Methods("GET")
	api.HandleFunc("/events/{id}", app.EventHandler.UpdateEvent).Methods("PUT")
	api.HandleFunc("/events/{id}", app.EventHandler.DeleteEvent).Methods("DELETE")
	api.HandleFunc("/events/{id}/attend", app.EventHandler.Attend).Methods("POST")
	api.HandleFunc("/events/{id}/attend", app.EventHandler.Unattend).Methods("DELETE")

	api.HandleFunc("/notifications", app.NotifHandler.ListNotifications).Methods("GET")
	api.HandleFunc("/notifications/unread/count", app.NotifHandler.UnreadCount).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", app.NotifHandler.MarkAsRead).Methods("PUT")

	return router
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// healthCheckHandler provides basic health check
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"studelie"}`))
}
