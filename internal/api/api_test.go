package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/inventory/internal/auth"
	"github.com/erazemk/inventory/internal/db"
	"github.com/erazemk/inventory/internal/imaging"
	"github.com/erazemk/inventory/internal/loader"
	"github.com/erazemk/inventory/internal/model"
	"github.com/erazemk/inventory/internal/store"
)

const (
	testTokenSecret = "test-secret"
	testPassphrase  = "correct horse"
)

type testServer struct {
	*httptest.Server
	token string
}

func setupTestServer(t *testing.T) (*testServer, *store.Items) {
	t.Helper()
	database := db.NewTestDB(t)
	ctx := context.Background()

	hash, err := auth.HashPassphrase(testPassphrase)
	require.NoError(t, err)
	require.NoError(t, store.SetPassphraseHash(ctx, database, hash))

	l := loader.New(func(ctx context.Context) ([]model.Item, error) {
		return store.ListItems(ctx, database)
	})
	t.Cleanup(l.Close)

	router := NewRouter(Config{
		DB:          database,
		Loader:      l,
		Images:      imaging.Loader{},
		TokenSecret: testTokenSecret,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	body, _ := json.Marshal(map[string]string{"passphrase": testPassphrase, "client": "test"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.NotEmpty(t, login.Token)

	return &testServer{Server: server, token: login.Token}, &store.Items{DB: database}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func seed(t *testing.T, items *store.Items, item model.Item) model.Item {
	t.Helper()
	saved, err := items.Insert(context.Background(), item)
	require.NoError(t, err)
	return saved
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"passphrase": "wrong"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ = json.Marshal(map[string]string{})
	resp, err = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginWithoutPassphraseSet(t *testing.T) {
	database := db.NewTestDB(t)
	server := httptest.NewServer(NewRouter(Config{DB: database, TokenSecret: testTokenSecret}))
	t.Cleanup(server.Close)

	body, _ := json.Marshal(map[string]string{"passphrase": "anything-at-all"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOversizedBodyRejected(t *testing.T) {
	server, items := setupTestServer(t)

	big := strings.Repeat("x", maxBodySize+1)

	body, _ := json.Marshal(map[string]string{"passphrase": big})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = server.do(t, http.MethodPost, "/api/items", model.ItemForm{Description: big, SupplierEmail: "s@x.io"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	all, err := items.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUnauthorizedAccess(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/items")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/items", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRevokesToken(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := server.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = server.do(t, http.MethodGet, "/api/items", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "token revoked", body["error"])
}

func TestListEmpty(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := server.do(t, http.MethodGet, "/api/items", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := decode[listResponse](t, resp)
	assert.True(t, list.Empty)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
}

func TestCreateAndList(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := server.do(t, http.MethodPost, "/api/items", model.ItemForm{
		Description:   "Widget",
		Price:         "2.5",
		Quantity:      "10",
		SupplierEmail: "s@x.io",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[itemResponse](t, resp)
	assert.NotZero(t, created.Item.ID)
	assert.Equal(t, "Widget", created.Item.Description)
	assert.False(t, created.HasImage)

	resp = server.do(t, http.MethodGet, "/api/items", nil)
	list := decode[listResponse](t, resp)
	assert.False(t, list.Empty)
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.Item, list.Items[0])
}

func TestCreateValidation(t *testing.T) {
	server, items := setupTestServer(t)

	tests := []struct {
		name string
		form model.ItemForm
		want string
	}{
		{"blank", model.ItemForm{}, model.ErrBlankForm.Message},
		{"not numeric", model.ItemForm{Description: "A", Price: "abc", SupplierEmail: "a@b"}, model.ErrNotNumeric.Message},
		{"negative", model.ItemForm{Description: "A", Quantity: "-1", SupplierEmail: "a@b"}, model.ErrNegative.Message},
		{"missing email", model.ItemForm{Description: "A", Price: "1"}, model.ErrRequired.Message},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := server.do(t, http.MethodPost, "/api/items", tt.form)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decode[map[string]string](t, resp)
			assert.Equal(t, tt.want, body["error"])
		})
	}

	all, err := items.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetItem(t *testing.T) {
	server, items := setupTestServer(t)
	item := seed(t, items, model.Item{Description: "Gadget", Price: 1, Quantity: 2, SupplierEmail: "g@x.io"})

	resp := server.do(t, http.MethodGet, "/api/items/"+itoa(item.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[itemResponse](t, resp)
	assert.Equal(t, item, got.Item)

	resp = server.do(t, http.MethodGet, "/api/items/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = server.do(t, http.MethodGet, "/api/items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSale(t *testing.T) {
	server, items := setupTestServer(t)
	item := seed(t, items, model.Item{Description: "Widget", Price: 2.5, Quantity: 1, SupplierEmail: "s@x.io"})

	resp := server.do(t, http.MethodPost, "/api/items/"+itoa(item.ID)+"/sale", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[listResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 0, list.Items[0].Quantity)

	// Nothing left: the sale is ignored.
	resp = server.do(t, http.MethodPost, "/api/items/"+itoa(item.ID)+"/sale", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decode[listResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 0, list.Items[0].Quantity)
}

func TestAdjustQuantity(t *testing.T) {
	server, items := setupTestServer(t)
	item := seed(t, items, model.Item{Description: "Widget", Quantity: 9, SupplierEmail: "s@x.io"})
	path := "/api/items/" + itoa(item.ID) + "/quantity"

	resp := server.do(t, http.MethodPost, path, adjustRequest{Mode: "received", Amount: "5"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[itemResponse](t, resp)
	assert.Equal(t, 14, got.Item.Quantity)
	assert.True(t, got.InputCleared)

	resp = server.do(t, http.MethodPost, path, adjustRequest{Mode: "sold", Amount: "20"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, model.ErrInsufficientStock.Message, body["error"])
	assert.Equal(t, true, body["quantity_error"])

	resp = server.do(t, http.MethodPost, path, adjustRequest{Mode: "sold", Amount: "x"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decode[itemResponse](t, resp)
	assert.Equal(t, 14, got.Item.Quantity)
	assert.True(t, got.InputCleared)

	resp = server.do(t, http.MethodPost, path, adjustRequest{Mode: "received", Amount: strconv.Itoa(math.MaxInt)})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body = decode[map[string]any](t, resp)
	assert.Equal(t, model.ErrQuantityTooLarge.Message, body["error"])

	resp = server.do(t, http.MethodPost, path, adjustRequest{Mode: "lost", Amount: "1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	stored, err := items.Get(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 14, stored.Quantity)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	server, items := setupTestServer(t)
	item := seed(t, items, model.Item{Description: "Widget", SupplierEmail: "s@x.io"})
	path := "/api/items/" + itoa(item.ID)

	resp := server.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.NotEmpty(t, body["confirm"])

	stored, err := items.Get(context.Background(), item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	resp = server.do(t, http.MethodDelete, path+"?confirm=yes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stored, err = items.Get(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	resp = server.do(t, http.MethodDelete, path+"?confirm=yes", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReorder(t *testing.T) {
	server, items := setupTestServer(t)
	item := seed(t, items, model.Item{Description: "Blue Widget", SupplierEmail: "s@x.io"})

	resp := server.do(t, http.MethodGet, "/api/items/"+itoa(item.ID)+"/reorder", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "s@x.io", body["to"])
	assert.Equal(t, "Product Order For Blue Widget", body["subject"])
	assert.Equal(t, "mailto:s@x.io?subject=Product%20Order%20For%20Blue%20Widget", body["mailto"])
}

func TestImage(t *testing.T) {
	server, items := setupTestServer(t)

	path := filepath.Join(t.TempDir(), "widget.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	withImage := seed(t, items, model.Item{Description: "Pic", SupplierEmail: "s@x.io", Image: "file://" + path})
	broken := seed(t, items, model.Item{Description: "Broken", SupplierEmail: "s@x.io", Image: "/does/not/exist.png"})
	plain := seed(t, items, model.Item{Description: "Plain", SupplierEmail: "s@x.io"})

	resp := server.do(t, http.MethodGet, "/api/items/"+itoa(withImage.ID)+"/image", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\xff\xd8")))

	resp = server.do(t, http.MethodGet, "/api/items/"+itoa(broken.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[itemResponse](t, resp)
	assert.False(t, got.HasImage)

	for _, id := range []int64{broken.ID, plain.ID} {
		resp = server.do(t, http.MethodGet, "/api/items/"+itoa(id)+"/image", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

func TestMetrics(t *testing.T) {
	server, items := setupTestServer(t)
	seed(t, items, model.Item{Description: "A", Price: 2, Quantity: 3, SupplierEmail: "a@x.io"})

	server.do(t, http.MethodGet, "/api/items", nil)
	server.do(t, http.MethodPost, "/api/items", model.ItemForm{Description: "B", SupplierEmail: "b@x.io"})

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "inventory_items 2")
	assert.Contains(t, text, "inventory_units_on_hand 3")
	assert.Contains(t, text, "inventory_stock_value 6")
	assert.Contains(t, text, `inventory_http_requests_total{method="GET",route="GET /api/items",status="200"}`)
	assert.Contains(t, text, `inventory_operations_total{operation="create"}`)
}

func TestRequestID(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := server.do(t, http.MethodGet, "/api/items", nil)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/metrics", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
