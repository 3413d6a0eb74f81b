package tasks

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypePasswordRecoverEmail = "email:password_recover"
	TypeInviteEmail          = "email:invite"
	TypePurgeTokens          = "tokens:purge"
)

// PasswordRecoverPayload points at the recovery token to mail to its user.
type PasswordRecoverPayload struct {
	UserID  uuid.UUID `json:"user_id"`
	TokenID uuid.UUID `json:"token_id"`
}

func NewPasswordRecoverEmailTask(payload PasswordRecoverPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePasswordRecoverEmail, data, asynq.Queue("critical"), asynq.MaxRetry(5)), nil
}

type InvitePayload struct {
	InviteID uuid.UUID `json:"invite_id"`
}

func NewInviteEmailTask(payload InvitePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeInviteEmail, data, asynq.MaxRetry(5)), nil
}

// PurgeTokensPayload is empty - the purge covers every expired token.
type PurgeTokensPayload struct{}

func NewPurgeTokensTask() *asynq.Task {
	return asynq.NewTask(TypePurgeTokens, nil, asynq.Queue("low"))
}
