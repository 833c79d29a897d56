package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/models"
)

// Error variables
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, username, passwordHash, name string, phone *string, role string) (*models.UserDB, error)
	Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserDB, error)
}

// TokenIssuer defines an interface for creating session tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, who models.Identity) (string, uuid.UUID, error)
}

// SessionRegistry tracks active session token ids.
type SessionRegistry interface {
	Save(ctx context.Context, tokenID uuid.UUID) error
	Delete(ctx context.Context, tokenID uuid.UUID) error
}

// AuthService handles registration, login, and account settings.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	tokens   TokenIssuer
	sessions SessionRegistry
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenIssuer, sessions SessionRegistry) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		tokens:   tokens,
		sessions: sessions,
	}
}

// Register creates a new student account and opens a session for it.
// Every registration gets the student role; staff accounts are seeded out
// of band.
func (svc *AuthService) Register(ctx context.Context, username, password, name string, phone *string) (*models.UserDB, string, error) {
	existing, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, "", err
	}
	if existing != nil {
		logger.Log.Errorw("username already exists", "username", username)
		return nil, "", ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, "", err
	}

	user, err := svc.writer.Create(ctx, username, string(hashed), name, phone, models.RoleStudent)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, "", err
	}

	token, err := svc.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a user and returns it with a fresh session token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (*models.UserDB, string, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username)
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (svc *AuthService) openSession(ctx context.Context, user *models.UserDB) (string, error) {
	token, tokenID, err := svc.tokens.Generate(ctx, models.Identity{UserID: user.UserID, Role: user.Role})
	if err != nil {
		logger.Log.Errorw("failed to generate session token", "err", err)
		return "", err
	}
	if err := svc.sessions.Save(ctx, tokenID); err != nil {
		logger.Log.Errorw("failed to register session", "err", err)
		return "", err
	}
	return token, nil
}

// Logout revokes the session behind the given token id.
func (svc *AuthService) Logout(ctx context.Context, tokenID uuid.UUID) error {
	if err := svc.sessions.Delete(ctx, tokenID); err != nil {
		logger.Log.Errorw("failed to revoke session", "err", err)
		return err
	}
	return nil
}

// CurrentUser returns the account behind an authenticated identity.
func (svc *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile updates the user's display name and phone.
func (svc *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, name string, phone *string) (*models.UserDB, error) {
	user, err := svc.writer.Update(ctx, userID, models.UserUpdate{Name: &name, Phone: phone})
	if err != nil {
		logger.Log.Errorw("failed to update profile", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ChangePassword verifies the current password and replaces it.
func (svc *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	hashedStr := string(hashed)
	if _, err := svc.writer.Update(ctx, userID, models.UserUpdate{PasswordHash: &hashedStr}); err != nil {
		logger.Log.Errorw("failed to update password", "err", err)
		return err
	}
	return nil
}
