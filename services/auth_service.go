package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/PaulBerthelot21/nutrylog/models"
	"github.com/PaulBerthelot21/nutrylog/utils"

	"gorm.io/gorm"
)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// login response does not reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	db     *gorm.DB
	users  *UserService
	mailer *utils.Mailer
}

// NewAuthService wires the auth flows. mailer may be nil when SES is not
// configured; password reset codes are then only stored, not sent.
func NewAuthService(db *gorm.DB, users *UserService, mailer *utils.Mailer) *AuthService {
	return &AuthService{db: db, users: users, mailer: mailer}
}

type AuthResult struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, AccessToken: token}, nil
}

func (s *AuthService) Register(input CreateUserInput) (*AuthResult, error) {
	user, err := s.users.Create(input)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Refresh re-issues a token for an already authenticated caller.
func (s *AuthService) Refresh(userID string) (*AuthResult, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// ForgotPassword stores a short-lived reset code and mails it. An unknown
// email is silently ignored to avoid account enumeration.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	code := utils.GenerateRandomToken(6)
	exp := time.Now().Add(15 * time.Minute)
	user.ResetToken = &code
	user.ResetTokenExp = &exp
	if err := s.db.Save(user).Error; err != nil {
		return err
	}

	if s.mailer == nil {
		log.Printf("mailer not configured, skipping reset email for %s", email)
		return nil
	}
	return s.mailer.SendResetEmail(ctx, user.Email, code)
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, "reset_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invalid reset token", models.ErrNotFound)
		}
		return err
	}
	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return fmt.Errorf("%w: reset token expired", models.ErrNotFound)
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	user.ResetToken = nil
	user.ResetTokenExp = nil
	return s.db.Save(&user).Error
}
