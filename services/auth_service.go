package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anjiri1684/review_board/errdefs"
	"github.com/anjiri1684/review_board/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService is the identity side of the backend: accounts, sessions and
// the tokens that point at them.
type AuthService struct {
	db     *gorm.DB
	tokens *TokenSigner
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, tokens *TokenSigner) *AuthService {
	return &AuthService{db: db, tokens: tokens, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		FullName: fullName,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hashedPassword),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errdefs.ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// SignIn checks the credentials and opens a new session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errdefs.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errdefs.ErrInvalidCredentials
	}

	sessionID := uuid.New()
	token, expiresAt, err := s.tokens.Issue(sessionID, user.ID)
	if err != nil {
		return "", nil, err
	}

	session := models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}
	return token, &user, nil
}

// CurrentUser resolves a token to its user. A missing, invalid, expired or
// revoked token yields a nil user and a nil error.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	sessionID, userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil
	}

	var session models.Session
	err = s.db.WithContext(ctx).Preload("User").
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.Live(s.now()) {
		return nil, nil
	}
	return &session.User, nil
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	sessionID, _, err := s.tokens.Parse(token)
	if err != nil {
		return errdefs.ErrUnauthenticated
	}

	result := s.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", s.now())
	if result.Error != nil {
		return fmt.Errorf("failed to revoke session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errdefs.ErrUnauthenticated
	}
	return nil
}

// PurgeSessions deletes sessions that can no longer authenticate anyone.
func (s *AuthService) PurgeSessions(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", s.now()).
		Delete(&models.Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
