package orderControllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/adnan-khan/minishop-api/middleware"
	"github.com/adnan-khan/minishop-api/session"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func testSession() *session.Session {
	return session.NewStore().New(7, "alice")
}

func TestPlaceOrdersEmptyCart(t *testing.T) {
	db, mock := newMockDB(t)
	sess := testSession()

	_, err := PlaceOrders(db, sess, Config{})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrdersWritesOneRowPerLine(t *testing.T) {
	db, mock := newMockDB(t)
	sess := testSession()
	sess.Cart.Add(1)
	sess.Cart.Add(2)
	sess.Cart.Add(2)

	mock.ExpectBegin()
	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`INSERT INTO "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
	}
	mock.ExpectCommit()

	orders, err := PlaceOrders(db, sess, Config{})
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, uint(7), o.UserID)
		assert.False(t, o.PlacedAt.IsZero())
	}

	// Cart is drained after commit; an immediate second checkout is empty.
	assert.Equal(t, 0, sess.Cart.Len())
	assert.Equal(t, 0, sess.Cart.Count())
	_, err = PlaceOrders(db, sess, Config{})
	assert.ErrorIs(t, err, ErrEmptyCart)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrdersRollbackKeepsCart(t *testing.T) {
	db, mock := newMockDB(t)
	sess := testSession()
	sess.Cart.Add(1)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := PlaceOrders(db, sess, Config{})
	require.Error(t, err)
	assert.Equal(t, 1, sess.Cart.Quantity(1))
	assert.Equal(t, 1, sess.Cart.Count())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrdersRevalidateVanishedProduct(t *testing.T) {
	db, mock := newMockDB(t)
	sess := testSession()
	sess.Cart.Add(9)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "description"}))
	mock.ExpectRollback()

	_, err := PlaceOrders(db, sess, Config{RevalidateProducts: true})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, 1, sess.Cart.Quantity(9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutHandlerEmptyCartRedirects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)
	sess := testSession()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.SessionKey, sess)
		c.Next()
	})
	r.POST("/checkout", CheckoutHandler(db, Config{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/checkout", nil))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	flashes := sess.Flashes()
	require.Len(t, flashes, 1)
	assert.Equal(t, "Cart is empty", flashes[0].Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutHandlerSuccessRedirectsToProducts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)
	sess := testSession()
	sess.Cart.Add(1)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.SessionKey, sess)
		c.Next()
	})
	r.POST("/checkout", CheckoutHandler(db, Config{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/checkout", nil))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))
	assert.Equal(t, 0, sess.Cart.Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}
