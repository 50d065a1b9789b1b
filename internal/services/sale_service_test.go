// internal/services/sale_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/eshopdev/eshop-backend/internal/apperrors"
	"github.com/eshopdev/eshop-backend/internal/config"
	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

type SaleServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *SaleService

	seller *models.User
	client *models.User
	store  *models.Store
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	payments := NewPaymentService(&config.PaymentConfig{Currency: "usd"})
	suite.service = NewSaleService(suite.db, payments)

	suite.seller = createTestUser(suite.T(), suite.db, models.RoleEmployee, models.StatusActive)
	suite.client = createTestUser(suite.T(), suite.db, models.RoleUser, models.StatusActive)
	suite.store = createTestStore(suite.T(), suite.db)
}

func (suite *SaleServiceTestSuite) sellerPrincipal() models.Principal {
	return models.Principal{
		UserID: suite.seller.ID,
		Role:   models.RoleEmployee,
		Status: models.StatusActive,
	}
}

func (suite *SaleServiceTestSuite) adminPrincipal() models.Principal {
	return models.Principal{UserID: 9000, Role: models.RoleAdmin, Status: models.StatusActive}
}

func (suite *SaleServiceTestSuite) TestCreateSaleComputesTotal() {
	p1 := createTestProduct(suite.T(), suite.db, 100)
	p2 := createTestProduct(suite.T(), suite.db, 25)

	sale, err := suite.service.CreateSale(suite.sellerPrincipal(), &CreateSaleRequest{
		ClientID:      suite.client.ID,
		StoreID:       suite.store.ID,
		PaymentMethod: models.PaymentMethodCash,
		Items: []SaleItemRequest{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 2},
		},
	})
	suite.Require().NoError(err)
	suite.Equal(250.0, sale.TotalAmount)
	suite.Equal(suite.seller.ID, sale.SellerID)
	suite.Equal(models.PaymentStatusOK, sale.PaymentStatus)
	suite.Len(sale.Items, 2)
}

// Without a card charge the submitted payment status is recorded as-is.
func (suite *SaleServiceTestSuite) TestCreateSaleKeepsSubmittedStatus() {
	p1 := createTestProduct(suite.T(), suite.db, 100)

	sale, err := suite.service.CreateSale(suite.sellerPrincipal(), &CreateSaleRequest{
		ClientID:      suite.client.ID,
		StoreID:       suite.store.ID,
		PaymentMethod: models.PaymentMethodCash,
		PaymentStatus: models.PaymentStatusDeclined,
		Items: []SaleItemRequest{
			{ProductID: p1.ID, Quantity: 1},
		},
	})
	suite.Require().NoError(err)
	suite.Equal(models.PaymentStatusDeclined, sale.PaymentStatus)
}

func (suite *SaleServiceTestSuite) TestCreateSaleOfflineCardKeepsSubmittedStatus() {
	p1 := createTestProduct(suite.T(), suite.db, 100)

	sale, err := suite.service.CreateSale(suite.sellerPrincipal(), &CreateSaleRequest{
		ClientID:      suite.client.ID,
		StoreID:       suite.store.ID,
		PaymentMethod: models.PaymentMethodCard,
		PaymentStatus: models.PaymentStatusDeclined,
		Items: []SaleItemRequest{
			{ProductID: p1.ID, Quantity: 1},
		},
	})
	suite.Require().NoError(err)
	suite.Equal(models.PaymentStatusDeclined, sale.PaymentStatus)
	suite.Nil(sale.PaymentReference)
}

func (suite *SaleServiceTestSuite) TestCreateSaleInvalidSubmittedStatus() {
	p1 := createTestProduct(suite.T(), suite.db, 100)

	_, err := suite.service.CreateSale(suite.sellerPrincipal(), &CreateSaleRequest{
		ClientID:      suite.client.ID,
		StoreID:       suite.store.ID,
		PaymentMethod: models.PaymentMethodCash,
		PaymentStatus: models.PaymentStatus("MAYBE"),
		Items: []SaleItemRequest{
			{ProductID: p1.ID, Quantity: 1},
		},
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindBadRequest, apperrors.KindOf(err))
}

// A sale naming an unknown product must fail atomically: no sale row and no
// item rows may survive.
func (suite *SaleServiceTestSuite) TestCreateSaleUnknownProductRollsBack() {
	p1 := createTestProduct(suite.T(), suite.db, 100)

	_, err := suite.service.CreateSale(suite.sellerPrincipal(), &CreateSaleRequest{
		ClientID:      suite.client.ID,
		StoreID:       suite.store.ID,
		PaymentMethod: models.PaymentMethodCash,
		Items: []SaleItemRequest{
			{ProductID: p1.ID, Quantity: 1},
			{ProductID: 99, Quantity: 1},
		},
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindNotFound, apperrors.KindOf(err))
	suite.Contains(err.Error(), "99")

	var saleCount, itemCount int64
	suite.Require().NoError(suite.db.Model(&models.Sale{}).Count(&saleCount).Error)
	suite.Require().NoError(suite.db.Model(&models.SaleItem{}).Count(&itemCount).Error)
	suite.Equal(int64(0), saleCount)
	suite.Equal(int64(0), itemCount)
}

// The item price is captured at sale time: later catalog price changes must
// not alter a recorded sale.
func (suite *SaleServiceTestSuite) TestPriceAtSaleIsImmutable() {
	product := createTestProduct(suite.T(), suite.db, 40)

	sale, err := suite.service.CreateSale(suite.sellerPrincipal(), &CreateSaleRequest{
		ClientID:      suite.client.ID,
		StoreID:       suite.store.ID,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", 75).Error)

	fresh, err := suite.service.GetSaleByID(suite.sellerPrincipal(), sale.ID)
	suite.Require().NoError(err)
	suite.Require().Len(fresh.Items, 1)
	suite.Equal(40.0, fresh.Items[0].PriceAtSale)
	suite.Equal(40.0, fresh.TotalAmount)
}

func (suite *SaleServiceTestSuite) TestCreateSaleUnknownClient() {
	product := createTestProduct(suite.T(), suite.db, 10)

	_, err := suite.service.CreateSale(suite.sellerPrincipal(), &CreateSaleRequest{
		ClientID:      9999,
		StoreID:       suite.store.ID,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindNotFound, apperrors.KindOf(err))
}

func (suite *SaleServiceTestSuite) TestCreateSaleUnknownStore() {
	product := createTestProduct(suite.T(), suite.db, 10)

	_, err := suite.service.CreateSale(suite.sellerPrincipal(), &CreateSaleRequest{
		ClientID:      suite.client.ID,
		StoreID:       9999,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindNotFound, apperrors.KindOf(err))
}

func (suite *SaleServiceTestSuite) TestEmployeeSeesOnlyOwnSales() {
	product := createTestProduct(suite.T(), suite.db, 10)
	otherSeller := createTestUser(suite.T(), suite.db, models.RoleEmployee, models.StatusActive)

	_, err := suite.service.CreateSale(suite.sellerPrincipal(), &CreateSaleRequest{
		ClientID:      suite.client.ID,
		StoreID:       suite.store.ID,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	suite.Require().NoError(err)

	otherPrincipal := models.Principal{
		UserID: otherSeller.ID,
		Role:   models.RoleEmployee,
		Status: models.StatusActive,
	}
	_, err = suite.service.CreateSale(otherPrincipal, &CreateSaleRequest{
		ClientID:      suite.client.ID,
		StoreID:       suite.store.ID,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	suite.Require().NoError(err)

	sales, total, err := suite.service.GetAllSales(suite.sellerPrincipal(), utils.PaginationParams{Page: 1, Limit: 10}, SaleFilter{})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(sales, 1)
	suite.Equal(suite.seller.ID, sales[0].SellerID)

	// Admins see everything.
	_, total, err = suite.service.GetAllSales(suite.adminPrincipal(), utils.PaginationParams{Page: 1, Limit: 10}, SaleFilter{})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
}

func (suite *SaleServiceTestSuite) TestEmployeeCannotReadForeignSale() {
	product := createTestProduct(suite.T(), suite.db, 10)
	otherSeller := createTestUser(suite.T(), suite.db, models.RoleEmployee, models.StatusActive)

	otherPrincipal := models.Principal{
		UserID: otherSeller.ID,
		Role:   models.RoleEmployee,
		Status: models.StatusActive,
	}
	sale, err := suite.service.CreateSale(otherPrincipal, &CreateSaleRequest{
		ClientID:      suite.client.ID,
		StoreID:       suite.store.ID,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	suite.Require().NoError(err)

	_, err = suite.service.GetSaleByID(suite.sellerPrincipal(), sale.ID)
	suite.Require().Error(err)
	suite.Equal(apperrors.KindForbidden, apperrors.KindOf(err))
}

func (suite *SaleServiceTestSuite) TestUpdateSalePaymentStatus() {
	product := createTestProduct(suite.T(), suite.db, 10)

	sale, err := suite.service.CreateSale(suite.sellerPrincipal(), &CreateSaleRequest{
		ClientID:      suite.client.ID,
		StoreID:       suite.store.ID,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateSale(suite.sellerPrincipal(), sale.ID, &UpdateSaleRequest{
		PaymentStatus: models.PaymentStatusRefund,
	})
	suite.Require().NoError(err)
	suite.Equal(models.PaymentStatusRefund, updated.PaymentStatus)

	// Re-applying the same status is a conflict.
	_, err = suite.service.UpdateSale(suite.sellerPrincipal(), sale.ID, &UpdateSaleRequest{
		PaymentStatus: models.PaymentStatusRefund,
	})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
}

func TestSaleServiceSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
