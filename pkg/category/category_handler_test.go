package category

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *mux.Router {
	handler := NewHandler(service)
	r := mux.NewRouter()
	r.HandleFunc("/api/categories/{namespace}", handler.List).Methods("GET")
	r.HandleFunc("/api/categories/{namespace}", handler.Create).Methods("POST")
	r.HandleFunc("/api/categories/{namespace}/{id}", handler.Delete).Methods("DELETE")
	return r
}

func TestHandler_Create(t *testing.T) {
	t.Run("should create a category and return 201", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		router := newRouter()

		// when
		req := httptest.NewRequest("POST", "/api/categories/expense", strings.NewReader(`{"name":"Food"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		// then
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":1,"name":"Food"}`, rec.Body.String())
	})

	t.Run("should return 400 for an unknown namespace", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		router := newRouter()

		// when
		req := httptest.NewRequest("POST", "/api/categories/things", strings.NewReader(`{"name":"Food"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		// then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should return 400 for a malformed body", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		router := newRouter()

		// when
		req := httptest.NewRequest("POST", "/api/categories/expense", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		// then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_List(t *testing.T) {
	t.Run("should list the namespace's categories", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		router := newRouter()
		_, err := service.Create(ctx, NamespaceIncome, "Salary")
		require.NoError(t, err)

		// when
		req := httptest.NewRequest("GET", "/api/categories/income", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		// then
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":1,"name":"Salary"}]`, rec.Body.String())
	})

	t.Run("should return an empty array when there are none", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		router := newRouter()

		// when
		req := httptest.NewRequest("GET", "/api/categories/expense", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		// then
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestHandler_Delete(t *testing.T) {
	t.Run("should delete a category and return 204", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		router := newRouter()
		created, err := service.Create(ctx, NamespaceExpense, "Food")
		require.NoError(t, err)

		// when
		req := httptest.NewRequest("DELETE", "/api/categories/expense/1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		// then
		assert.Equal(t, http.StatusNoContent, rec.Code)
		_, err = repoStub.Find(ctx, NamespaceExpense, created.ID)
		assert.Error(t, err)
	})

	t.Run("should return 409 for a referenced category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		router := newRouter()
		_, err := service.Create(ctx, NamespaceExpense, "Food")
		require.NoError(t, err)
		repoStub.AddLedgerRef(NamespaceExpense, "Food")

		// when
		req := httptest.NewRequest("DELETE", "/api/categories/expense/1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		// then
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should return 404 for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		router := newRouter()

		// when
		req := httptest.NewRequest("DELETE", "/api/categories/expense/42", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		// then
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
