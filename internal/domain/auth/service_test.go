package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

type MockJWT struct {
	mock.Mock
}

func (m *MockJWT) GenerateToken(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestService_Register_Success(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "amina@example.com").Return(nil, ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, new(MockJWT))

	u, err := service.Register(context.Background(), RegisterRequest{
		Email:    "Amina@Example.com",
		Password: "password123",
		Name:     "Amina Nankya",
		Phone:    "+256700000001",
		Role:     "provider",
	})

	assert.NoError(t, err)
	assert.Equal(t, "amina@example.com", u.Email)
	assert.Equal(t, RoleProvider, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEmpty(t, u.ID)
	// the raw password is never stored
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))
}

func TestService_Register_AdminIsNotSelfAssignable(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, new(MockJWT))

	u, err := service.Register(context.Background(), RegisterRequest{
		Email:    "sneaky@example.com",
		Password: "password123",
		Name:     "Sneaky",
		Phone:    "+256700000009",
		Role:     "admin",
	})

	assert.NoError(t, err)
	assert.Equal(t, RoleClient, u.Role)
}

func TestService_Register_EmailTaken(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "amina@example.com").
		Return(&User{ID: "u-1", Email: "amina@example.com"}, nil)

	service := NewService(repo, new(MockJWT))

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "amina@example.com",
		Password: "password123",
		Name:     "Amina",
		Phone:    "+256700000001",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "Create")
}

func registeredUser(t *testing.T, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &User{
		ID:           "u-1",
		Email:        "amina@example.com",
		PasswordHash: string(hash),
		Role:         RoleClient,
		IsActive:     true,
	}
}

func TestService_Login_Success(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "amina@example.com").
		Return(registeredUser(t, "password123"), nil)

	jwt := new(MockJWT)
	jwt.On("GenerateToken", "u-1", "client").Return("signed-token", nil)

	service := NewService(repo, jwt)

	res, err := service.Login(context.Background(), " Amina@example.com ", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", res.Token)
	assert.Equal(t, "u-1", res.User.ID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "amina@example.com").
		Return(registeredUser(t, "password123"), nil)

	service := NewService(repo, new(MockJWT))

	_, err := service.Login(context.Background(), "amina@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmailIsIndistinguishable(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrUserNotFound)

	service := NewService(repo, new(MockJWT))

	_, err := service.Login(context.Background(), "ghost@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_InactiveAccount(t *testing.T) {
	repo := new(MockUserRepository)
	u := registeredUser(t, "password123")
	u.IsActive = false
	repo.On("GetByEmail", mock.Anything, "amina@example.com").Return(u, nil)

	service := NewService(repo, new(MockJWT))

	_, err := service.Login(context.Background(), "amina@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserInactive)
}
