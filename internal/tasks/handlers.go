package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/mail"
	"gorm.io/gorm"
)

type Handler struct {
	db         *gorm.DB
	logger     *slog.Logger
	mailer     mail.Mailer
	webURL     string
	recoverTTL time.Duration
}

func NewHandler(db *gorm.DB, logger *slog.Logger, mailer mail.Mailer, webURL string, recoverTTL time.Duration) *Handler {
	return &Handler{
		db:         db,
		logger:     logger,
		mailer:     mailer,
		webURL:     webURL,
		recoverTTL: recoverTTL,
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypePasswordRecoverEmail, h.HandlePasswordRecoverEmail)
	mux.HandleFunc(TypeInviteEmail, h.HandleInviteEmail)
	mux.HandleFunc(TypePurgeTokens, h.HandlePurgeTokens)
}

func (h *Handler) HandlePasswordRecoverEmail(ctx context.Context, t *asynq.Task) error {
	var payload PasswordRecoverPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	var token models.Token
	err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", payload.TokenID, payload.UserID).
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Already used or purged.
		h.logger.Info("recover token gone, skipping email", "token_id", payload.TokenID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading token: %w", err)
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, "id = ?", payload.UserID).Error; err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	link := fmt.Sprintf("%s/auth/reset-password?code=%s", h.webURL, token.ID)
	msg := mail.Message{
		To:      user.Email,
		Subject: "Reset your password",
		Body: fmt.Sprintf("Hi %s,\n\nUse the link below to choose a new password. It expires in %s.\n\n%s\n",
			user.Name, h.recoverTTL, link),
	}
	if err := h.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending recover email: %w", err)
	}

	h.logger.Info("sent password recover email", "user_id", user.ID)
	return nil
}

func (h *Handler) HandleInviteEmail(ctx context.Context, t *asynq.Task) error {
	var payload InvitePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	var invite models.Invite
	err := h.db.WithContext(ctx).
		Preload("Organization").
		Preload("Author").
		First(&invite, "id = ?", payload.InviteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		h.logger.Info("invite gone, skipping email", "invite_id", payload.InviteID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading invite: %w", err)
	}

	inviter := "Someone"
	if invite.Author != nil && invite.Author.Name != "" {
		inviter = invite.Author.Name
	}

	msg := mail.Message{
		To:      invite.Email,
		Subject: fmt.Sprintf("You're invited to join %s", invite.Organization.Name),
		Body: fmt.Sprintf("%s invited you to join %s as %s.\n\n%s/invite/%s\n",
			inviter, invite.Organization.Name, invite.Role, h.webURL, invite.ID),
	}
	if err := h.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending invite email: %w", err)
	}

	h.logger.Info("sent invite email", "invite_id", invite.ID, "organization_id", invite.OrganizationID)
	return nil
}

// HandlePurgeTokens deletes recovery tokens older than the recovery TTL.
func (h *Handler) HandlePurgeTokens(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-h.recoverTTL)

	result := h.db.WithContext(ctx).
		Where("type = ? AND created_at < ?", models.TokenPasswordRecover, cutoff).
		Delete(&models.Token{})
	if result.Error != nil {
		return fmt.Errorf("purging tokens: %w", result.Error)
	}

	h.logger.Info("purged expired tokens", "deleted", result.RowsAffected)
	return nil
}
