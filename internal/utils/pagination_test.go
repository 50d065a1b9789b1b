// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(query string) PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/items?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsForQuery("")
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Empty(t, params.Search)
}

func TestGetPaginationParamsClampsInvalidValues(t *testing.T) {
	params := paramsForQuery("page=0&limit=-5")
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)

	params = paramsForQuery("page=abc&limit=xyz")
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)

	params = paramsForQuery("limit=500")
	assert.Equal(t, DefaultLimit, params.Limit)
}

func TestGetPaginationParamsPassesThrough(t *testing.T) {
	params := paramsForQuery("page=3&limit=25&search=widget")
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.Limit)
	assert.Equal(t, "widget", params.Search)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, PaginationParams{Page: 3, Limit: 10}.Offset())
}

func TestNewPaginatedResultFlags(t *testing.T) {
	params := PaginationParams{Page: 1, Limit: 10}
	result := NewPaginatedResult([]int{}, 25, params)
	assert.Equal(t, 3, result.TotalPages)
	assert.True(t, result.HasNext)
	assert.False(t, result.HasPrev)

	params.Page = 2
	result = NewPaginatedResult([]int{}, 25, params)
	assert.True(t, result.HasNext)
	assert.True(t, result.HasPrev)

	params.Page = 3
	result = NewPaginatedResult([]int{}, 25, params)
	assert.False(t, result.HasNext)
	assert.True(t, result.HasPrev)
}

func TestNewPaginatedResultEmpty(t *testing.T) {
	result := NewPaginatedResult([]int{}, 0, PaginationParams{Page: 1, Limit: 10})
	assert.Equal(t, 0, result.TotalPages)
	assert.False(t, result.HasNext)
	assert.False(t, result.HasPrev)
}
