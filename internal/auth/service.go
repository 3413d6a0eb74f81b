package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/apperr"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/permissions"
	"github.com/hugh/nextsaas/internal/tasks"
	"github.com/hugh/nextsaas/pkg/crypto"
	"github.com/hugh/nextsaas/pkg/queue"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultRecoverTTL = time.Hour

type Service struct {
	db         *gorm.DB
	jwt        *JWTService
	github     GitHubExchanger
	encryptor  *crypto.Encryptor
	queue      queue.Enqueuer
	logger     *slog.Logger
	recoverTTL time.Duration
}

// Options holds the optional collaborators of Service. A nil GitHub disables
// GitHub sign-in; a nil Queue only logs recovery tokens.
type Options struct {
	GitHub     GitHubExchanger
	Encryptor  *crypto.Encryptor
	Queue      queue.Enqueuer
	Logger     *slog.Logger
	RecoverTTL time.Duration
}

func NewService(db *gorm.DB, jwt *JWTService, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RecoverTTL <= 0 {
		opts.RecoverTTL = defaultRecoverTTL
	}
	return &Service{
		db:         db,
		jwt:        jwt,
		github:     opts.GitHub,
		encryptor:  opts.Encryptor,
		queue:      opts.Queue,
		logger:     opts.Logger,
		recoverTTL: opts.RecoverTTL,
	}
}

var errEmailTaken = apperr.BadRequest("User with the same email already exists.")

// hashPassword reports passwords bcrypt cannot hash as invalid input.
func hashPassword(password string) (string, error) {
	hash, err := HashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.BadRequest("Password must be at most 72 bytes.")
	}
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return hash, nil
}

type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
}

type PasswordLoginInput struct {
	Email    string
	Password string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) CreateAccount(ctx context.Context, input CreateAccountInput) (*models.User, error) {
	email := normalizeEmail(input.Email)

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if count > 0 {
		return nil, errEmailTaken
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: &hash,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return attachByDomain(tx, &user)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with a concurrent signup for the same email.
		return nil, errEmailTaken
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created", "user_id", user.ID)
	return &user, nil
}

// attachByDomain makes user a MEMBER of the organization that auto-joins
// accounts from the user's email domain, if there is one.
func attachByDomain(tx *gorm.DB, user *models.User) error {
	domain := user.EmailDomain()
	if domain == "" {
		return nil
	}

	var org models.Organization
	err := tx.Where("domain = ? AND should_attach_users_by_domain = ?", domain, true).First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("finding organization by domain: %w", err)
	}

	var count int64
	if err := tx.Model(&models.Member{}).
		Where("organization_id = ? AND user_id = ?", org.ID, user.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return tx.Create(&models.Member{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           permissions.RoleMember,
	}).Error
}

func (s *Service) AuthenticateWithPassword(ctx context.Context, input PasswordLoginInput) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(input.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.BadRequest("Invalid credentials.")
	}
	if err != nil {
		return "", err
	}

	if user.PasswordHash == nil {
		return "", apperr.BadRequest("User does not have a password, use a social login.")
	}

	if !CheckPassword(input.Password, *user.PasswordHash) {
		return "", apperr.BadRequest("Invalid credentials.")
	}

	return s.jwt.GenerateToken(user.ID)
}

func (s *Service) RequestPasswordRecover(ctx context.Context, email string) error {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Callers cannot tell whether the account exists.
		return nil
	}
	if err != nil {
		return err
	}

	token := models.Token{
		Type:   models.TokenPasswordRecover,
		UserID: user.ID,
	}
	if err := s.db.WithContext(ctx).Create(&token).Error; err != nil {
		return fmt.Errorf("creating recover token: %w", err)
	}

	if s.queue == nil {
		s.logger.Debug("password recover token issued", "user_id", user.ID, "code", token.ID)
		return nil
	}

	task, err := tasks.NewPasswordRecoverEmailTask(tasks.PasswordRecoverPayload{
		UserID:  user.ID,
		TokenID: token.ID,
	})
	if err != nil {
		return err
	}
	if _, err := s.queue.EnqueueContext(ctx, task); err != nil {
		s.logger.Error("failed to enqueue recover email", "user_id", user.ID, "error", err)
	}
	return nil
}

// ResetPassword consumes a recovery code. Unknown, malformed and expired codes
// are all reported as unauthorized and leave the password untouched.
func (s *Service) ResetPassword(ctx context.Context, code, password string) error {
	tokenID, err := uuid.Parse(code)
	if err != nil {
		return apperr.Unauthorized("")
	}

	var token models.Token
	err = s.db.WithContext(ctx).
		Where("id = ? AND type = ?", tokenID, models.TokenPasswordRecover).
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Unauthorized("")
	}
	if err != nil {
		return err
	}
	if time.Since(token.CreatedAt) > s.recoverTTL {
		return apperr.Unauthorized("")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A concurrent reset with the same code deletes nothing here.
		res := tx.Where("id = ? AND type = ?", token.ID, models.TokenPasswordRecover).Delete(&models.Token{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return apperr.Unauthorized("")
		}
		return tx.Model(&models.User{}).
			Where("id = ?", token.UserID).
			Update("password_hash", hash).Error
	})
}

func (s *Service) AuthenticateWithGitHub(ctx context.Context, code string) (string, error) {
	if s.github == nil {
		return "", apperr.BadRequest("GitHub authentication is not configured.")
	}

	identity, err := s.github.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("github exchange failed", "error", err)
		return "", apperr.BadRequest("Invalid GitHub authorization code.")
	}
	if identity.Email == "" {
		return "", apperr.BadRequest("Your GitHub account must have an email to authenticate.")
	}

	accessToken := ""
	if s.encryptor != nil && identity.AccessToken != "" {
		accessToken, err = s.encryptor.EncryptString(identity.AccessToken)
		if err != nil {
			return "", fmt.Errorf("encrypting access token: %w", err)
		}
	}

	var user models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", normalizeEmail(identity.Email)).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				Name:  identity.Name,
				Email: normalizeEmail(identity.Email),
			}
			if identity.AvatarURL != "" {
				user.AvatarURL = &identity.AvatarURL
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			if err := attachByDomain(tx, &user); err != nil {
				return err
			}
		case err != nil:
			return err
		}

		var account models.Account
		err = tx.Where("provider = ? AND user_id = ?", models.ProviderGitHub, user.ID).First(&account).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.Account{
				Provider:          models.ProviderGitHub,
				ProviderAccountID: identity.ID,
				UserID:            user.ID,
				AccessToken:       accessToken,
			}).Error
		case err != nil:
			return err
		}
		return tx.Model(&account).Update("access_token", accessToken).Error
	})
	if err != nil {
		return "", err
	}

	return s.jwt.GenerateToken(user.ID)
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("User not found.")
		}
		return nil, err
	}
	return &user, nil
}
