// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/eshopdev/eshop-backend/internal/apperrors"
	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewAuthService(suite.db, newTestConfig())
}

func (suite *AuthServiceTestSuite) register(email, phone string) *AuthResponse {
	resp, err := suite.service.Register(&RegisterRequest{
		FirstName: "Alice",
		Email:     email,
		Phone:     phone,
		Password:  "Password123",
	})
	suite.Require().NoError(err)
	return resp
}

func (suite *AuthServiceTestSuite) TestRegisterIssuesTokenPair() {
	resp := suite.register("alice@example.com", "+15550000100")

	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal("Bearer", resp.TokenType)
	suite.Equal(3600, resp.ExpiresIn)
	suite.Equal(models.RoleUser, resp.User.Role)
	suite.Equal(models.StatusActive, resp.User.Status)

	claims, err := utils.ValidateAccessToken(resp.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(resp.User.ID, claims.UserID)
	suite.Equal(string(models.RoleUser), claims.Role)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	suite.register("alice@example.com", "+15550000100")

	_, err := suite.service.Register(&RegisterRequest{
		FirstName: "Bob",
		Email:     "alice@example.com",
		Phone:     "+15550000101",
		Password:  "Password123",
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicatePhone() {
	suite.register("alice@example.com", "+15550000100")

	_, err := suite.service.Register(&RegisterRequest{
		FirstName: "Bob",
		Email:     "bob@example.com",
		Phone:     "+15550000100",
		Password:  "Password123",
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
}

func (suite *AuthServiceTestSuite) TestRegisterWeakPassword() {
	_, err := suite.service.Register(&RegisterRequest{
		FirstName: "Alice",
		Email:     "alice@example.com",
		Phone:     "+15550000100",
		Password:  "short",
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindBadRequest, apperrors.KindOf(err))
}

func (suite *AuthServiceTestSuite) TestLoginSuccess() {
	suite.register("alice@example.com", "+15550000100")

	resp, err := suite.service.Login(&LoginRequest{
		Email:    "alice@example.com",
		Password: "Password123",
	})
	suite.Require().NoError(err)
	suite.NotEmpty(resp.AccessToken)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	suite.register("alice@example.com", "+15550000100")

	_, err := suite.service.Login(&LoginRequest{
		Email:    "alice@example.com",
		Password: "WrongPassword1",
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindBadRequest, apperrors.KindOf(err))
}

func (suite *AuthServiceTestSuite) TestLoginUnknownUser() {
	_, err := suite.service.Login(&LoginRequest{
		Email:    "nobody@example.com",
		Password: "Password123",
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindNotFound, apperrors.KindOf(err))
}

func (suite *AuthServiceTestSuite) TestLoginBannedUser() {
	resp := suite.register("alice@example.com", "+15550000100")

	suite.Require().NoError(suite.db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("status", models.StatusBanned).Error)

	_, err := suite.service.Login(&LoginRequest{
		Email:    "alice@example.com",
		Password: "Password123",
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindUnauthenticated, apperrors.KindOf(err))
}

func (suite *AuthServiceTestSuite) TestLoginDeletedUserLooksAbsent() {
	resp := suite.register("alice@example.com", "+15550000100")

	suite.Require().NoError(suite.db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("status", models.StatusDeleted).Error)

	_, err := suite.service.Login(&LoginRequest{
		Email:    "alice@example.com",
		Password: "Password123",
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindNotFound, apperrors.KindOf(err))
}

func (suite *AuthServiceTestSuite) TestRefreshRotatesTokens() {
	resp := suite.register("alice@example.com", "+15550000100")

	refreshed, err := suite.service.Refresh(resp.RefreshToken)
	suite.Require().NoError(err)
	suite.NotEmpty(refreshed.AccessToken)
	suite.Equal(resp.User.ID, refreshed.User.ID)
}

func (suite *AuthServiceTestSuite) TestRefreshEmptyToken() {
	_, err := suite.service.Refresh("")
	suite.Require().Error(err)
	suite.Equal(apperrors.KindUnauthenticated, apperrors.KindOf(err))
}

func (suite *AuthServiceTestSuite) TestRefreshRejectsAccessToken() {
	resp := suite.register("alice@example.com", "+15550000100")

	_, err := suite.service.Refresh(resp.AccessToken + "broken")
	suite.Require().Error(err)
	suite.Equal(apperrors.KindUnauthenticated, apperrors.KindOf(err))
}

func (suite *AuthServiceTestSuite) TestRefreshBannedUser() {
	resp := suite.register("alice@example.com", "+15550000100")

	suite.Require().NoError(suite.db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("status", models.StatusBanned).Error)

	_, err := suite.service.Refresh(resp.RefreshToken)
	suite.Require().Error(err)
	suite.Equal(apperrors.KindUnauthenticated, apperrors.KindOf(err))
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
