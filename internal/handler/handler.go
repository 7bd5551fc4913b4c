package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/turnoshq/roster-manager/backend/internal/config"
	"github.com/turnoshq/roster-manager/backend/internal/domain"
	"github.com/turnoshq/roster-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Everything below requires a logged-in coordinator.
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/coordinators", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/", h.CreateCoordinator)
			r.Get("/", h.GetAllCoordinators)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.coordinatorInfo)
				r.Get("/", h.GetCoordinator)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateCoordinator)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteCoordinator)
			})
		})

		r.Route("/workers", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateWorker)
			r.Get("/", h.GetMyWorkers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.workerInfo)
				r.Get("/", h.GetWorker)
				r.Patch("/", h.UpdateWorker)
				r.Delete("/", h.DeleteWorker)
				r.Post("/lend", h.LendWorker)
				r.Post("/reclaim", h.ReclaimWorker)
				r.Post("/release", h.ReleaseWorker)
				r.Route("/leaves", func(r chi.Router) {
					r.Post("/", h.CreateLeavePeriod)
					r.Get("/", h.GetLeavePeriods)
					r.Delete("/{leaveID}", h.DeleteLeavePeriod)
				})
			})
		})

		r.Route("/overrides", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Put("/", h.UpsertOverride)
			r.Get("/", h.GetOverrides)
			r.Delete("/{id}", h.DeleteOverride)
		})

		r.Route("/pools/{pool}/workers", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetPoolWorkers)
			r.Post("/{id}/claim", h.ClaimPoolWorker)
		})

		r.Route("/rosters", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/generate", h.GenerateRoster)
			r.Get("/", h.GetRoster)
		})
	})
}
