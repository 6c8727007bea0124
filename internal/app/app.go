package app

import (
	"fmt"
	"net/http"
	"remindme/internal/app/deps"
	"remindme/internal/app/services"
	"remindme/internal/http/handlers/auth"
	loginwithemail "remindme/internal/http/handlers/auth/log_in_with_email"
	logout "remindme/internal/http/handlers/auth/log_out"
	signupwithemail "remindme/internal/http/handlers/auth/sign_up_with_email"
	"remindme/internal/http/handlers/profile/me"
	sendtestemail "remindme/internal/http/handlers/profile/send_test_email"
	requestpasswordreset "remindme/internal/http/handlers/reset/request_password_reset"
	resetpassword "remindme/internal/http/handlers/reset/reset_password"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler: NewRouter(deps.Config.AllowedOrigins, s),
		Addr:    fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
	}
}

func NewRouter(allowedOrigins []string, s *services.Services) http.Handler {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))

	resetRouter := chi.NewRouter()
	resetRouter.Method(http.MethodPost, "/request", requestpasswordreset.New(s.RequestPasswordReset))
	resetRouter.Method(http.MethodPost, "/consume", resetpassword.New(s.ResetPassword))

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthTokenToContext)
	profileRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	profileRouter.Method(http.MethodPost, "/email/test", sendtestemail.New(s.SendTestEmail))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/reset", resetRouter)
	router.Mount("/profile", profileRouter)

	return router
}
