package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/turnoshq/roster-manager/backend/internal/domain"
	"github.com/turnoshq/roster-manager/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllCoordinators(w http.ResponseWriter, r *http.Request) {
	coordinators, err := h.repository.GetAllCoordinators()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched coordinator list", coordinators)
}

func (h *Handler) CreateCoordinator(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		FullName string `json:"fullName" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Role     string `json:"role" validate:"required,oneof=coordinator admin"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// New accounts get a random password delivered by email.
	password := utils.GenerateRandomPassword(h.config.NewCoordinator.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	coordinator := &domain.Coordinator{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         domain.Role(req.Role),
	}

	if err := h.repository.CreateCoordinator(coordinator); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "coordinators_username_key":
				h.badRequest(w, r, errors.New("username already taken"))
			case pgErr.ConstraintName == "coordinators_email_key":
				h.badRequest(w, r, errors.New("email already taken"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	mailMessage := domain.MailMessage{
		Type: "create_coordinator",
		To:   coordinator.Email,
		Data: domain.CreateCoordinatorMailData{
			FullName: req.FullName,
			Username: req.Username,
			Password: password,
		},
	}

	emailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"roster_mail_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        emailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "coordinator created", coordinator)
}

func (h *Handler) GetCoordinator(w http.ResponseWriter, r *http.Request) {
	coordinator := r.Context().Value(CoordinatorInfoCtx).(*domain.Coordinator)
	h.successResponse(w, r, "fetched coordinator info", coordinator)
}

func (h *Handler) UpdateCoordinator(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    *string `json:"email" validate:"omitempty,email"`
		Role     *string `json:"role" validate:"omitempty,oneof=coordinator admin"`
		IsActive *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	coordinator := r.Context().Value(CoordinatorInfoCtx).(*domain.Coordinator)

	if req.Email != nil {
		coordinator.Email = *req.Email
	}
	if req.Role != nil {
		coordinator.Role = domain.Role(*req.Role)
	}
	if req.IsActive != nil {
		coordinator.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateCoordinator(coordinator); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "coordinators_email_key":
				h.badRequest(w, r, errors.New("email already taken"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "coordinator update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "coordinator updated", coordinator)
}

func (h *Handler) DeleteCoordinator(w http.ResponseWriter, r *http.Request) {
	coordinator := r.Context().Value(CoordinatorInfoCtx).(*domain.Coordinator)

	if err := h.repository.DeleteCoordinator(coordinator.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "coordinator deleted", nil)
}
