package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portssvc "github.com/bankpro/bankpro_backend/internal/core/ports/services"
	"github.com/bankpro/bankpro_backend/internal/core/services"
	"github.com/bankpro/bankpro_backend/internal/dto"
	"github.com/bankpro/bankpro_backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	userRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (s *UserServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.userRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.userRepo)
}

func (s *UserServiceTestSuite) TestCreateUserHashesPasswordAndNormalizesEmail() {
	s.userRepo.On("FindUserByEmail", s.ctx, "nuevo@example.com").Return(nil, apperrors.ErrNotFound)

	var saved domain.User
	s.userRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).
		Return(nil)

	user, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{
		Name:     "  Marco Rojas ",
		Email:    " Nuevo@Example.COM ",
		Password: "s3cret-enough",
		Role:     "ADMIN",
	})
	s.Require().NoError(err)
	s.Equal("Marco Rojas", user.Name)
	s.Equal("nuevo@example.com", user.Email)
	s.Equal(domain.RoleAdmin, user.Role)

	s.NotEqual("s3cret-enough", saved.PasswordHash, "the plaintext password must never be stored")
	s.True(utils.CheckPasswordHash("s3cret-enough", saved.PasswordHash))
}

func (s *UserServiceTestSuite) TestCreateUserDuplicateEmail() {
	existing := domain.User{UserID: uuid.NewString(), Email: "taken@example.com"}
	s.userRepo.On("FindUserByEmail", s.ctx, "taken@example.com").Return(&existing, nil)

	_, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "s3cret-enough",
		Role:     "OPERATOR",
	})
	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
	s.userRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestListUsersNeverReturnsNil() {
	s.userRepo.On("ListUsers", s.ctx).Return([]domain.User{}, nil)

	users, err := s.service.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.NotNil(users)
	s.Empty(users)
}

func (s *UserServiceTestSuite) TestDeleteUserPropagatesNotFound() {
	userID := uuid.NewString()
	s.userRepo.On("DeleteUser", s.ctx, userID).Return(apperrors.ErrNotFound)

	err := s.service.DeleteUser(s.ctx, userID)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
