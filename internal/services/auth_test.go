package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusprint/printqueue/internal/models"
	"github.com/campusprint/printqueue/internal/services"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		username     string
		existingUser *models.UserDB
		readerErr    error
		writerErr    error
		wantErr      error
	}{
		{
			name:     "successful registration",
			username: "alice",
		},
		{
			name:         "username taken",
			username:     "bob",
			existingUser: &models.UserDB{UserID: uuid.New(), Username: "bob"},
			wantErr:      services.ErrUsernameTaken,
		},
		{
			name:      "reader error",
			username:  "eve",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "writer error",
			username:  "carol",
			writerErr: errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockTokens := services.NewMockTokenIssuer(ctrl)
			mockSessions := services.NewMockSessionRegistry(ctrl)

			svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockSessions)

			mockReader.EXPECT().
				GetByUsername(gomock.Any(), tt.username).
				Return(tt.existingUser, tt.readerErr)

			if tt.existingUser == nil && tt.readerErr == nil {
				created := &models.UserDB{UserID: uuid.New(), Username: tt.username, Role: models.RoleStudent}
				mockWriter.EXPECT().
					Create(gomock.Any(), tt.username, gomock.Any(), "Test User", gomock.Nil(), models.RoleStudent).
					Return(func() *models.UserDB {
						if tt.writerErr != nil {
							return nil
						}
						return created
					}(), tt.writerErr)

				if tt.writerErr == nil {
					tokenID := uuid.New()
					mockTokens.EXPECT().
						Generate(gomock.Any(), models.Identity{UserID: created.UserID, Role: models.RoleStudent}).
						Return("token123", tokenID, nil)
					mockSessions.EXPECT().
						Save(gomock.Any(), tokenID).
						Return(nil)
				}
			}

			user, token, err := svc.Register(context.Background(), tt.username, "pass123", "Test User", nil)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, models.RoleStudent, user.Role)
				assert.Equal(t, "token123", token)
			}
		})
	}
}

func TestAuthService_RegisterAlwaysStudent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	mockSessions := services.NewMockSessionRegistry(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockSessions)

	created := &models.UserDB{UserID: uuid.New(), Username: "mallory", Role: models.RoleStudent}

	mockReader.EXPECT().GetByUsername(gomock.Any(), "mallory").Return(nil, nil)
	// The role argument is pinned: registration can never produce staff.
	mockWriter.EXPECT().
		Create(gomock.Any(), "mallory", gomock.Any(), "Mallory", gomock.Nil(), models.RoleStudent).
		Return(created, nil)
	mockTokens.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("t", uuid.New(), nil)
	mockSessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	user, _, err := svc.Register(context.Background(), "mallory", "pw", "Mallory", nil)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	password := "secret"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userID := uuid.New()

	tests := []struct {
		name      string
		username  string
		loginPass string
		user      *models.UserDB
		readerErr error
		wantErr   error
	}{
		{
			name:      "successful login",
			username:  "alice",
			loginPass: password,
			user:      &models.UserDB{UserID: userID, Username: "alice", PasswordHash: string(hashed), Role: models.RoleStudent},
		},
		{
			name:      "unknown user",
			username:  "ghost",
			loginPass: password,
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "wrong password",
			username:  "alice",
			loginPass: "nope",
			user:      &models.UserDB{UserID: userID, Username: "alice", PasswordHash: string(hashed), Role: models.RoleStudent},
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "reader error",
			username:  "alice",
			loginPass: password,
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockTokens := services.NewMockTokenIssuer(ctrl)
			mockSessions := services.NewMockSessionRegistry(ctrl)

			svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockSessions)

			mockReader.EXPECT().
				GetByUsername(gomock.Any(), tt.username).
				Return(tt.user, tt.readerErr)

			if tt.wantErr == nil {
				tokenID := uuid.New()
				mockTokens.EXPECT().
					Generate(gomock.Any(), models.Identity{UserID: userID, Role: models.RoleStudent}).
					Return("token123", tokenID, nil)
				mockSessions.EXPECT().Save(gomock.Any(), tokenID).Return(nil)
			}

			user, token, err := svc.Login(context.Background(), tt.username, tt.loginPass)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, "token123", token)
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	mockSessions := services.NewMockSessionRegistry(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockSessions)

	tokenID := uuid.New()
	mockSessions.EXPECT().Delete(gomock.Any(), tokenID).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), tokenID))
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	current := "oldpass"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(current), bcrypt.DefaultCost)
	userID := uuid.New()

	tests := []struct {
		name        string
		currentPass string
		user        *models.UserDB
		wantErr     error
		expectWrite bool
	}{
		{
			name:        "successful change",
			currentPass: current,
			user:        &models.UserDB{UserID: userID, PasswordHash: string(hashed)},
			expectWrite: true,
		},
		{
			name:        "wrong current password",
			currentPass: "wrong",
			user:        &models.UserDB{UserID: userID, PasswordHash: string(hashed)},
			wantErr:     services.ErrWrongPassword,
		},
		{
			name:        "user missing",
			currentPass: current,
			wantErr:     services.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockTokens := services.NewMockTokenIssuer(ctrl)
			mockSessions := services.NewMockSessionRegistry(ctrl)

			svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockSessions)

			mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(tt.user, nil)
			if tt.expectWrite {
				mockWriter.EXPECT().
					Update(gomock.Any(), userID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, upd models.UserUpdate) (*models.UserDB, error) {
						assert.NotNil(t, upd.PasswordHash)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*upd.PasswordHash), []byte("newpass")))
						return tt.user, nil
					})
			}

			err := svc.ChangePassword(context.Background(), userID, tt.currentPass, "newpass")
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	mockSessions := services.NewMockSessionRegistry(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockSessions)

	userID := uuid.New()
	phone := "555-0134"

	mockWriter.EXPECT().
		Update(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, upd models.UserUpdate) (*models.UserDB, error) {
			assert.Equal(t, "New Name", *upd.Name)
			assert.Equal(t, phone, *upd.Phone)
			return &models.UserDB{UserID: userID, Name: "New Name", Phone: &phone}, nil
		})

	user, err := svc.UpdateProfile(context.Background(), userID, "New Name", &phone)
	assert.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)

	// Absent user maps to not found.
	mockWriter.EXPECT().Update(gomock.Any(), userID, gomock.Any()).Return(nil, nil)
	_, err = svc.UpdateProfile(context.Background(), userID, "x", nil)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
