package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/taskdeck/taskdeck-api/internal/api"
	apimiddleware "github.com/taskdeck/taskdeck-api/internal/api/middleware"
)

// setupRouter configures the application router: global middleware, the
// public auth endpoints, and the session-protected resource endpoints.
// Trailing slashes in the route patterns are part of the API contract.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	cookies := app.cookieSettings()
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.sessions,
		app.hasher,
		app.hasher,
		app.resetTokens,
		app.queue,
		app.mailer,
		app.config.Server.BaseURL,
		cookies,
		app.logger,
	)
	userHandler := api.NewUserHandler(app.userStore, app.sessions, app.hasher, cookies, app.logger)
	listHandler := api.NewListHandler(app.listStore, app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.listStore, app.logger)

	sessionAuth := apimiddleware.NewSessionAuth(app.sessions)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(sessionAuth.LoadSession)
		r.Use(apimiddleware.CSRF(apimiddleware.CSRFEnforce))

		r.Route("/users", func(r chi.Router) {
			r.Get("/csrf/", authHandler.CSRFToken)
			r.Post("/register/", authHandler.Register)
			r.With(apimiddleware.Throttle(app.throttle)).Post("/login/", authHandler.Login)
			r.Post("/reset-password/", authHandler.ResetPassword)
			r.Patch("/reset-password-confirm/{userID}/", authHandler.ResetPasswordConfirm)

			r.Group(func(r chi.Router) {
				r.Use(apimiddleware.RequireAuth)
				r.Post("/logout/", authHandler.Logout)
				r.Patch("/change-password/", authHandler.ChangePassword)
				r.Get("/me/", userHandler.Me)
				r.Patch("/me/", userHandler.UpdateMe)
				r.Delete("/me/", userHandler.DeleteMe)
			})
		})

		r.Route("/task_list/list", func(r chi.Router) {
			r.Use(apimiddleware.RequireAuth)
			r.Get("/", listHandler.Index)
			r.Post("/", listHandler.Create)
			r.Get("/{listID}/", listHandler.Get)
			r.Patch("/{listID}/", listHandler.Update)
			r.Delete("/{listID}/", listHandler.Delete)

			r.Get("/{listID}/task/", taskHandler.Index)
			r.Post("/{listID}/task/", taskHandler.Create)
			r.Get("/{listID}/task/{taskID}/", taskHandler.Get)
			r.Patch("/{listID}/task/{taskID}/", taskHandler.Update)
			r.Delete("/{listID}/task/{taskID}/", taskHandler.Delete)
		})
	})

	return r
}
