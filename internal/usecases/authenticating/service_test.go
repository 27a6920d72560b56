package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/echopie/alarmone-insights-api/infrastructure/repository/mocks"
	"github.com/echopie/alarmone-insights-api/internal/config"
	"github.com/echopie/alarmone-insights-api/internal/domain"
)

func newTestService(repo *mocks.MockUserRepository) *Service {
	return &Service{
		userRepo: repo,
		cfg: &config.Config{
			Auth: config.Auth{
				Secret:        "segredo_de_teste",
				TokenTTLHours: 1,
			},
		},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	service := newTestService(mockRepo)

	activeUser := &domain.User{
		ID:           1,
		Name:         "Operador",
		Email:        "operador@echopie.com",
		PasswordHash: hashPassword(t, "Senha123"),
		RoleID:       1,
		Active:       true,
	}

	tests := []struct {
		name        string
		email       string
		password    string
		setup       func()
		expectError error
	}{
		{
			name:     "login com credenciais válidas retorna token",
			email:    "operador@echopie.com",
			password: "Senha123",
			setup: func() {
				mockRepo.EXPECT().GetUserByEmail("operador@echopie.com").Return(activeUser, nil)
			},
		},
		{
			name:     "email é normalizado antes da consulta",
			email:    "  Operador@Echopie.com ",
			password: "Senha123",
			setup: func() {
				mockRepo.EXPECT().GetUserByEmail("operador@echopie.com").Return(activeUser, nil)
			},
		},
		{
			name:        "usuário inexistente",
			email:       "ninguem@echopie.com",
			password:    "Senha123",
			setup: func() {
				mockRepo.EXPECT().GetUserByEmail("ninguem@echopie.com").Return(nil, nil)
			},
			expectError: ErrUserNotFound,
		},
		{
			name:     "usuário desativado",
			email:    "operador@echopie.com",
			password: "Senha123",
			setup: func() {
				disabled := *activeUser
				disabled.Active = false
				mockRepo.EXPECT().GetUserByEmail("operador@echopie.com").Return(&disabled, nil)
			},
			expectError: ErrUserDisabled,
		},
		{
			name:     "senha incorreta",
			email:    "operador@echopie.com",
			password: "SenhaErrada",
			setup: func() {
				mockRepo.EXPECT().GetUserByEmail("operador@echopie.com").Return(activeUser, nil)
			},
			expectError: ErrInvalidCredentials,
		},
		{
			name:        "email e senha vazios",
			email:       "",
			password:    "",
			setup:       func() {},
			expectError: ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			token, err := service.LoginUser(tt.email, tt.password)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, token)

			// O token emitido deve ser aceito pelo próprio serviço
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, activeUser.ID, claims.UserID)
			assert.Equal(t, activeUser.RoleID, claims.UserRoleID)
			assert.Equal(t, activeUser.Email, claims.Email)
		})
	}
}

func TestService_ValidateToken_TokenInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(mocks.NewMockUserRepository(ctrl))

	claims, err := service.ValidateToken("token-invalido")

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	service := newTestService(mockRepo)

	t.Run("cria usuário com senha criptografada e inativo por padrão", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByEmail("novo@echopie.com").Return(nil, nil)
		mockRepo.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) (*domain.User, error) {
				assert.False(t, user.Active)
				assert.Equal(t, 3, user.RoleID)
				// A senha nunca é persistida em texto puro
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Senha123")))
				user.ID = 10
				return user, nil
			})

		user, err := service.CreateUser(&domain.User{
			Name:         "Novo",
			Email:        "Novo@Echopie.com",
			PasswordHash: "Senha123",
		})

		require.NoError(t, err)
		assert.Equal(t, 10, user.ID)
		assert.Equal(t, "novo@echopie.com", user.Email)
	})

	t.Run("email já cadastrado", func(t *testing.T) {
		mockRepo.EXPECT().
			GetUserByEmail("existe@echopie.com").
			Return(&domain.User{ID: 2}, nil)

		user, err := service.CreateUser(&domain.User{
			Name:         "Duplicado",
			Email:        "existe@echopie.com",
			PasswordHash: "Senha123",
		})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("dados obrigatórios ausentes", func(t *testing.T) {
		user, err := service.CreateUser(&domain.User{Email: "so-email@echopie.com"})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_ResetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	service := newTestService(mockRepo)

	admin := &domain.User{ID: 1, RoleID: 1, Active: true}
	viewer := &domain.User{ID: 2, RoleID: 3, Active: true, PasswordHash: "antigo"}

	t.Run("administrador redefine senha de outro usuário", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByID(1).Return(admin, nil)
		mockRepo.EXPECT().GetUserByID(2).Return(viewer, nil)
		mockRepo.EXPECT().
			UpdateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) error {
				assert.NotEqual(t, "antigo", user.PasswordHash)
				return nil
			})

		password, err := service.ResetPassword(1, 2)

		require.NoError(t, err)
		assert.Len(t, password, 12)
	})

	t.Run("não administrador não pode redefinir senhas", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByID(2).Return(viewer, nil)

		password, err := service.ResetPassword(2, 1)

		assert.Empty(t, password)
		assert.ErrorIs(t, err, ErrInsufficientPrivilege)
	})
}

func TestService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	service := newTestService(mockRepo)

	t.Run("altera a senha quando a atual confere", func(t *testing.T) {
		user := &domain.User{ID: 1, Active: true, PasswordHash: hashPassword(t, "Atual123")}

		mockRepo.EXPECT().GetUserByID(1).Return(user, nil)
		mockRepo.EXPECT().UpdateUser(gomock.Any()).Return(nil)

		err := service.ChangePassword(1, "Atual123", "NovaSenha1")
		assert.NoError(t, err)
	})

	t.Run("senha atual incorreta", func(t *testing.T) {
		user := &domain.User{ID: 1, Active: true, PasswordHash: hashPassword(t, "Atual123")}

		mockRepo.EXPECT().GetUserByID(1).Return(user, nil)

		err := service.ChangePassword(1, "Errada", "NovaSenha1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("nova senha fraca é rejeitada", func(t *testing.T) {
		user := &domain.User{ID: 1, Active: true, PasswordHash: hashPassword(t, "Atual123")}

		mockRepo.EXPECT().GetUserByID(1).Return(user, nil)

		err := service.ChangePassword(1, "Atual123", "fraca")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}
