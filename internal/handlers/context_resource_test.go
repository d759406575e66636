package handlers

import (
	"net/http/httptest"
	"testing"

	"bizhub/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	return c
}

func TestEventFromContext(t *testing.T) {
	c := newTestContext(t)
	event := &models.Event{Title: "年会"}
	c.Set("resource", event)

	// 中间件加载的实例原样复用，不触发二次查询
	assert.Same(t, event, eventFromContext(c))
}

func TestEventFromContextMissing(t *testing.T) {
	c := newTestContext(t)

	assert.Nil(t, eventFromContext(c))
}

func TestEventFromContextWrongType(t *testing.T) {
	c := newTestContext(t)
	c.Set("resource", &models.Payment{})

	assert.Nil(t, eventFromContext(c))
}

func TestPaymentFromContext(t *testing.T) {
	c := newTestContext(t)
	payment := &models.Payment{Amount: 8800, Currency: "CNY"}
	c.Set("resource", payment)

	assert.Same(t, payment, paymentFromContext(c))
	assert.Nil(t, eventFromContext(c))
}

func TestClientFromContext(t *testing.T) {
	c := newTestContext(t)
	client := &models.Client{Name: "星光传媒"}
	c.Set("resource", client)

	assert.Same(t, client, clientFromContext(c))
	assert.Nil(t, paymentFromContext(c))
}
