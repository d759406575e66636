package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(t *testing.T, query string) *PageParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return ParsePageParams(c)
}

func TestParsePageParamsDefaults(t *testing.T) {
	params := paramsForQuery(t, "")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.PageSize)
}

func TestParsePageParamsClampsInvalidValues(t *testing.T) {
	params := paramsForQuery(t, "page=0&page_size=abc")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.PageSize)

	params = paramsForQuery(t, "page=3&page_size=500")
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 100, params.PageSize)
}

func TestPageParamsOffsetLimit(t *testing.T) {
	params := paramsForQuery(t, "page=4&page_size=20")

	assert.Equal(t, 60, params.Offset())
	assert.Equal(t, 20, params.Limit())
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(2, 10, 25)

	assert.Equal(t, 3, info.TotalPages)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)

	last := NewPageInfo(3, 10, 25)
	assert.False(t, last.HasNext)

	empty := NewPageInfo(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
