package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"cryptomarket/internal/domain"
	"cryptomarket/internal/repository"
	"cryptomarket/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// setupRouter builds the real route table over a fresh in-memory database
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.CryptoCurrency{}))

	users := service.NewUserService(repository.NewUserRepository(db))
	cryptos := service.NewCryptoService(repository.NewCryptoRepository(db))

	r := gin.New()
	r.GET("/users", FindUsersHandler(users))
	r.POST("/users", CreateUserHandler(users))
	r.PATCH("/users/:id", UpdateUserHandler(users))
	r.GET("/cryptos", FindCryptosHandler(cryptos, nil))
	r.GET("/cryptos/order", OrderCryptosHandler(cryptos, nil))
	return r, db
}

// doJSON performs a request with a JSON body and returns the recorder
func doJSON(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
