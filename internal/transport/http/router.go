package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	aiapp "github.com/lms-api/internal/application/ai"
	"github.com/lms-api/internal/application/auth"
	"github.com/lms-api/internal/application/catalog"
	"github.com/lms-api/internal/application/discussion"
	"github.com/lms-api/internal/application/progress"
	"github.com/lms-api/internal/application/quiz"
	"github.com/lms-api/internal/application/session"
	"github.com/lms-api/internal/application/submission"
	"github.com/lms-api/internal/application/user"
	"github.com/lms-api/internal/config"
	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/transport/http/handler"
	appmiddleware "github.com/lms-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the OTP endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	var cache progress.LeaderboardCache
	if deps.LeaderboardCache != nil {
		cache = deps.LeaderboardCache
	}

	sessionSvc := session.NewService(session.ServiceDeps{
		SessionRepo: deps.SessionRepo,
		UserRepo:    deps.UserRepo,
	})
	authSvc := auth.NewService(auth.ServiceDeps{
		OTPRepo:     deps.OTPRepo,
		SessionRepo: deps.SessionRepo,
		UserRepo:    deps.UserRepo,
		Mailer:      deps.Mailer,
		SMSSender:   deps.SMSSender,
		OTPValidity: cfg.OTPValidity,
		SessionTTL:  cfg.SessionTTL,
	})
	userSvc := user.NewService(user.ServiceDeps{UserRepo: deps.UserRepo})
	catalogSvc := catalog.NewService(catalog.ServiceDeps{
		CourseRepo: deps.CourseRepo,
		LessonRepo: deps.LessonRepo,
	})
	quizSvc := quiz.NewService(quiz.ServiceDeps{
		QuizRepo:   deps.QuizRepo,
		LessonRepo: deps.LessonRepo,
		Generator:  deps.AIClient,
	})
	progressSvc := progress.NewService(progress.ServiceDeps{
		ProgressRepo: deps.ProgressRepo,
		Cache:        cache,
	})
	discussionSvc := discussion.NewService(discussion.ServiceDeps{
		DiscussionRepo: deps.DiscussionRepo,
		CourseRepo:     deps.CourseRepo,
	})
	submissionSvc := submission.NewService(submission.ServiceDeps{
		SubmissionRepo: deps.SubmissionRepo,
		Tutor:          deps.AIClient,
	})
	aiSvc := aiapp.NewService(aiapp.ServiceDeps{
		Upstreams:  deps.AIClient,
		AudioStore: deps.AudioStore,
	})

	authMw := appmiddleware.Auth(sessionSvc)

	healthH := handler.NewHealthHandler(deps.UserRepo)
	authH := handler.NewAuthHandler(authSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	userH := handler.NewUserHandler(userSvc)
	courseH := handler.NewCourseHandler(catalogSvc)
	lessonH := handler.NewLessonHandler(catalogSvc)
	quizH := handler.NewQuizHandler(quizSvc)
	progressH := handler.NewProgressHandler(progressSvc)
	discussionH := handler.NewDiscussionHandler(discussionSvc)
	submissionH := handler.NewSubmissionHandler(submissionSvc)
	aiH := handler.NewAIHandler(aiSvc)
	paymentH := handler.NewPaymentHandler()

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.Get("/test", healthH.Test)
		r.Post("/test", healthH.Test)
		r.With(sensitiveRL.Limit).Post("/auth/request-otp", authH.RequestOTP)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)

			r.Get("/users", userH.List)
			r.Put("/users/{email}", userH.Update)

			r.Get("/courses", courseH.List)
			r.Get("/courses/{id}", courseH.Get)
			r.Get("/lessons", lessonH.List)
			r.Get("/lessons/{id}", lessonH.Get)
			r.Get("/quiz/by-lesson/{lesson_id}", quizH.GetByLesson)

			r.Post("/progress", progressH.Upsert)
			r.Get("/progress/by-user", progressH.ListByUser)
			r.Get("/leaderboard", progressH.Leaderboard)

			r.Post("/discussion", discussionH.Post)
			r.Get("/discussion", discussionH.List)

			r.Post("/submission", submissionH.Submit)
			r.Get("/submission", submissionH.ListMine)

			r.Post("/ai/lesson", aiH.GenerateLesson)
			r.Post("/ai/chat", aiH.Chat)
			r.Post("/ai/tts", aiH.Synthesize)

			r.Post("/payments/checkout", paymentH.Checkout)

			// Teacher and admin routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleTeacher, domain.RoleAdmin))

				r.Post("/courses", courseH.Create)
				r.Post("/lessons", lessonH.Create)
				r.Post("/quiz/generate", quizH.Generate)
			})
		})
	})

	return r
}
