// internal/services/category_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/eshopdev/eshop-backend/internal/apperrors"
	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CategoryService
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewCategoryService(suite.db)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory() {
	category, err := suite.service.CreateCategory(&CreateCategoryRequest{
		Name:        "Electronics",
		Description: "Gadgets and devices",
	})
	suite.Require().NoError(err)
	suite.Equal("Electronics", category.Name)
	suite.NotZero(category.ID)
}

func (suite *CategoryServiceTestSuite) TestCreateCategoryDuplicateNameCaseInsensitive() {
	_, err := suite.service.CreateCategory(&CreateCategoryRequest{Name: "Electronics"})
	suite.Require().NoError(err)

	_, err = suite.service.CreateCategory(&CreateCategoryRequest{Name: "electronics"})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
}

func (suite *CategoryServiceTestSuite) TestUpdateCategoryRename() {
	category, err := suite.service.CreateCategory(&CreateCategoryRequest{Name: "Electronics"})
	suite.Require().NoError(err)

	name := "Home Electronics"
	updated, err := suite.service.UpdateCategory(category.ID, &UpdateCategoryRequest{Name: &name})
	suite.Require().NoError(err)
	suite.Equal("Home Electronics", updated.Name)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategoryNameTaken() {
	_, err := suite.service.CreateCategory(&CreateCategoryRequest{Name: "Electronics"})
	suite.Require().NoError(err)
	category, err := suite.service.CreateCategory(&CreateCategoryRequest{Name: "Books"})
	suite.Require().NoError(err)

	name := "Electronics"
	_, err = suite.service.UpdateCategory(category.ID, &UpdateCategoryRequest{Name: &name})
	suite.Require().Error(err)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
}

func (suite *CategoryServiceTestSuite) TestDeleteCategoryDetachesProducts() {
	category, err := suite.service.CreateCategory(&CreateCategoryRequest{Name: "Electronics"})
	suite.Require().NoError(err)

	product := createTestProduct(suite.T(), suite.db, 10)
	suite.Require().NoError(suite.db.Model(product).Association("Categories").Append(category))

	suite.Require().NoError(suite.service.DeleteCategory(category.ID))

	_, err = suite.service.GetCategoryByID(category.ID)
	suite.Require().Error(err)
	suite.Equal(apperrors.KindNotFound, apperrors.KindOf(err))

	// The product itself survives.
	var fresh models.Product
	suite.Require().NoError(suite.db.Preload("Categories").First(&fresh, product.ID).Error)
	suite.Empty(fresh.Categories)
}

func (suite *CategoryServiceTestSuite) TestSearchByName() {
	_, err := suite.service.CreateCategory(&CreateCategoryRequest{Name: "Electronics"})
	suite.Require().NoError(err)
	_, err = suite.service.CreateCategory(&CreateCategoryRequest{Name: "Books"})
	suite.Require().NoError(err)

	categories, total, err := suite.service.GetAllCategories(utils.PaginationParams{Page: 1, Limit: 10, Search: "elec"})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(categories, 1)
	suite.Equal("Electronics", categories[0].Name)
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
