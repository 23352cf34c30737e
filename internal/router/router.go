package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/quizforge/quizforge-lambda/internal/auth"
	"github.com/quizforge/quizforge-lambda/internal/class"
	"github.com/quizforge/quizforge-lambda/internal/lecture"
	"github.com/quizforge/quizforge-lambda/internal/middlewares"
	"github.com/quizforge/quizforge-lambda/internal/quiz"
	"github.com/quizforge/quizforge-lambda/internal/submission"
)

type RouterConfig struct {
	LectureHandler    *lecture.Handler
	QuizHandler       *quiz.Handler
	SubmissionHandler *submission.Handler
	ClassHandler      *class.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Mount("/lectures", lecture.Routes(cfg.LectureHandler))
	r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
	r.Mount("/classes", class.Routes(cfg.ClassHandler))

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/classes/{classId}/lectures", cfg.LectureHandler.ListByClass)
		r.Get("/quizzes/{id}/results", cfg.SubmissionHandler.Results)
	})

	// Anonymous quiz taking: fetch by slug, then submit choices.
	r.Mount("/q", quiz.PublicRoutes(cfg.QuizHandler))
	r.Mount("/submissions", submission.Routes(cfg.SubmissionHandler))

	return r
}
