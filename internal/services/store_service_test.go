// internal/services/store_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/eshopdev/eshop-backend/internal/apperrors"
	"github.com/eshopdev/eshop-backend/internal/models"
)

type StoreServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *StoreService
}

func (suite *StoreServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewStoreService(suite.db)
}

func (suite *StoreServiceTestSuite) TestCreateStore() {
	store, err := suite.service.CreateStore(&CreateStoreRequest{
		Name:        "Downtown",
		Address:     "1 Market Square",
		Email:       "downtown@example.com",
		OpeningTime: "09:00",
		ClosingTime: "21:00",
	})
	suite.Require().NoError(err)
	suite.Equal("Downtown", store.Name)
	suite.Equal("09:00", store.OpeningTime)
}

func (suite *StoreServiceTestSuite) TestCreateStoreDuplicateEmail() {
	_, err := suite.service.CreateStore(&CreateStoreRequest{
		Name:        "Downtown",
		Address:     "1 Market Square",
		Email:       "downtown@example.com",
		OpeningTime: "09:00",
		ClosingTime: "21:00",
	})
	suite.Require().NoError(err)

	_, err = suite.service.CreateStore(&CreateStoreRequest{
		Name:        "Uptown",
		Address:     "2 Hill Road",
		Email:       "Downtown@Example.com",
		OpeningTime: "09:00",
		ClosingTime: "21:00",
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
}

func (suite *StoreServiceTestSuite) TestUpdateStoreHours() {
	store, err := suite.service.CreateStore(&CreateStoreRequest{
		Name:        "Downtown",
		Address:     "1 Market Square",
		Email:       "downtown@example.com",
		OpeningTime: "09:00",
		ClosingTime: "21:00",
	})
	suite.Require().NoError(err)

	opening := "08:30"
	updated, err := suite.service.UpdateStore(store.ID, &UpdateStoreRequest{
		OpeningTime: &opening,
	})
	suite.Require().NoError(err)
	suite.Equal("08:30", updated.OpeningTime)
}

func (suite *StoreServiceTestSuite) TestDeleteStoreDetachesStaff() {
	store, err := suite.service.CreateStore(&CreateStoreRequest{
		Name:        "Downtown",
		Address:     "1 Market Square",
		Email:       "downtown@example.com",
		OpeningTime: "09:00",
		ClosingTime: "21:00",
	})
	suite.Require().NoError(err)

	employee := createTestUser(suite.T(), suite.db, models.RoleEmployee, models.StatusActive)
	position := "cashier"
	suite.Require().NoError(suite.db.Model(employee).Updates(map[string]interface{}{
		"store_id": store.ID,
		"position": position,
	}).Error)

	suite.Require().NoError(suite.service.DeleteStore(store.ID))

	var fresh models.User
	suite.Require().NoError(suite.db.First(&fresh, employee.ID).Error)
	suite.Nil(fresh.StoreID)
	suite.Nil(fresh.Position)
}

func (suite *StoreServiceTestSuite) TestDeleteStoreWithSalesRejected() {
	store, err := suite.service.CreateStore(&CreateStoreRequest{
		Name:        "Downtown",
		Address:     "1 Market Square",
		Email:       "downtown@example.com",
		OpeningTime: "09:00",
		ClosingTime: "21:00",
	})
	suite.Require().NoError(err)

	seller := createTestUser(suite.T(), suite.db, models.RoleEmployee, models.StatusActive)
	client := createTestUser(suite.T(), suite.db, models.RoleUser, models.StatusActive)
	sale := &models.Sale{
		ClientID:      client.ID,
		SellerID:      seller.ID,
		StoreID:       store.ID,
		TotalAmount:   10,
		PaymentMethod: models.PaymentMethodCash,
		PaymentStatus: models.PaymentStatusOK,
	}
	suite.Require().NoError(suite.db.Create(sale).Error)

	err = suite.service.DeleteStore(store.ID)
	suite.Require().Error(err)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
}

func TestStoreServiceSuite(t *testing.T) {
	suite.Run(t, new(StoreServiceTestSuite))
}
