package handler

import (
	"net/http"

	"github.com/Dan9191/gallery-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc       *service.Service
	publicURL string
	log       *logrus.Logger
}

func NewHandler(svc *service.Service, publicURL string, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, publicURL: publicURL, log: log}
}

// NewRouter wires all routes. Register/login and the uploads file server
// are public; everything else sits behind the auth middleware.
func NewRouter(h *Handler, authMW mux.MiddlewareFunc, uploadDir string) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/user/register", h.Register).Methods("POST")
	r.HandleFunc("/user/login", h.Login).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(authMW)
	authRouter.HandleFunc("/collection", h.CreateCollection).Methods("POST")
	authRouter.HandleFunc("/collection", h.ListCollections).Methods("GET")
	authRouter.HandleFunc("/collection/{id}", h.GetCollection).Methods("GET")
	authRouter.HandleFunc("/collection/{id}", h.UpdateCollection).Methods("PUT")
	authRouter.HandleFunc("/collection/{id}", h.DeleteCollection).Methods("DELETE")
	authRouter.HandleFunc("/image/create", h.CreateImage).Methods("POST")
	authRouter.HandleFunc("/image/me", h.GetMyImages).Methods("GET")
	authRouter.HandleFunc("/image/{id}/upload", h.UploadImage).Methods("POST")
	authRouter.HandleFunc("/image/{id}", h.GetImage).Methods("GET")

	return r
}
