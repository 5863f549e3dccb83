package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/printshop/internal/handlers"
	"github.com/Skotchmaster/printshop/internal/mailer"
	"github.com/Skotchmaster/printshop/internal/middleware/auth"
	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/mykafka"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/service"
	"github.com/Skotchmaster/printshop/internal/storage"
	"github.com/Skotchmaster/printshop/internal/testutil"
	"github.com/Skotchmaster/printshop/pkg/tokens"
)

var testSecret = []byte("router-test-secret")

type testServer struct {
	e    *echo.Echo
	repo *repo.GormRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.OpenDB(t)
	r := &repo.GormRepo{DB: db}
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	events := mykafka.Nop{}
	authSvc := &service.AuthService{Repo: r, JWTSecret: testSecret, TokenTTL: time.Hour, Events: events}
	products := &service.ProductService{Repo: r, Events: events}
	uploadDir := t.TempDir()

	e := echo.New()
	Register(e, &Deps{
		DB:               db,
		Auth:             &auth.Middleware{Secret: testSecret, Users: authSvc},
		UploadDir:        uploadDir,
		AuthHandler:      &handlers.AuthHandler{Svc: authSvc},
		UserHandler:      &handlers.UserHandler{Svc: &service.UserService{Repo: r}},
		ProductHandler:   &handlers.ProductHandler{Svc: products},
		SearchHandler:    &handlers.SearchHandler{Products: products},
		CartHandler:      &handlers.CartHandler{Svc: &service.CartService{Repo: r}},
		CheckoutHandler:  &handlers.CheckoutHandler{Svc: &service.CheckoutService{Repo: r, IDs: node, Events: events}},
		OrderHandler:     &handlers.OrderHandler{Svc: &service.OrderService{Repo: r, Events: events}},
		PortfolioHandler: &handlers.PortfolioHandler{Svc: &service.PortfolioService{Repo: r}},
		ReviewHandler:    &handlers.ReviewHandler{Svc: &service.ReviewService{Repo: r}},
		ContactHandler:   &handlers.ContactHandler{Svc: &service.ContactService{Repo: r, Mail: mailer.Nop{}}},
		SubscribeHandler: &handlers.SubscribeHandler{Svc: &service.SubscribeService{Repo: r, Mail: mailer.Nop{}}},
		BlogHandler:      &handlers.BlogHandler{Svc: &service.BlogService{Repo: r}},
		UploadHandler:    &handlers.UploadHandler{Store: &storage.Local{Dir: uploadDir, BaseURL: "http://localhost:9000"}},
	})
	return &testServer{e: e, repo: r}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) user(t *testing.T, email, role string) (*models.User, string) {
	t.Helper()
	u := &models.User{Name: "User " + email, Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, s.repo.CreateUserIfNotExists(context.Background(), u))
	token, _, err := tokens.NewAccessToken(u.ID.String(), u.Role, time.Hour, testSecret)
	require.NoError(t, err)
	return u, token
}

func (s *testServer) product(t *testing.T, sku string) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        "Name plank " + sku,
		Description: "Layered name plank",
		Price:       decimal.NewFromInt(1999),
		SKU:         sku,
		Category:    "Planks",
	}
	require.NoError(t, s.repo.CreateProduct(context.Background(), p))
	return p
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireMessage(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	require.Equal(t, msg, decode(t, rec)["message"])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/live", "", nil).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/ready", "", nil).Code)
}

func TestRegisterLoginProfile(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{"name": "Ann", "email": "ann@example.com", "password": "secret1"}

	rec := s.do(t, http.MethodPost, "/api/users/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode(t, rec)
	require.NotEmpty(t, res["token"])
	user := res["user"].(map[string]any)
	require.Equal(t, "customer", user["role"])
	require.NotEmpty(t, user["_id"])

	requireMessage(t, s.do(t, http.MethodPost, "/api/users/register", "", body), http.StatusBadRequest, "User already exists")
	users, err := s.repo.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)

	requireMessage(t, s.do(t, http.MethodPost, "/api/users/login", "",
		map[string]string{"email": "ann@example.com", "password": "wrong"}), http.StatusBadRequest, "Invalid Password")
	requireMessage(t, s.do(t, http.MethodPost, "/api/users/login", "",
		map[string]string{"email": "nobody@example.com", "password": "secret1"}), http.StatusBadRequest, "Invalid Email")

	rec = s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{"email": "ann@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode(t, rec)["token"].(string)

	rec = s.do(t, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ann@example.com", decode(t, rec)["email"])
}

func TestRegister_ValidatesEmail(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/users/register", "",
		map[string]string{"name": "Ann", "email": "not-an-email", "password": "secret1"})
	requireMessage(t, rec, http.StatusBadRequest, "email must be a valid email address")
}

func TestProtect_RejectsMissingAndBadTokens(t *testing.T) {
	s := newTestServer(t)

	requireMessage(t, s.do(t, http.MethodGet, "/api/users/profile", "", nil), http.StatusUnauthorized, "Not authorized, no token")
	requireMessage(t, s.do(t, http.MethodGet, "/api/users/profile", "garbage", nil), http.StatusUnauthorized, "Not authorized, token failed")

	other, _, err := tokens.NewAccessToken("00000000-0000-0000-0000-000000000001", "customer", time.Hour, []byte("other-secret"))
	require.NoError(t, err)
	requireMessage(t, s.do(t, http.MethodGet, "/api/users/profile", other, nil), http.StatusUnauthorized, "Not authorized, token failed")

	ghost, _, err := tokens.NewAccessToken("00000000-0000-0000-0000-000000000001", "customer", time.Hour, testSecret)
	require.NoError(t, err)
	requireMessage(t, s.do(t, http.MethodGet, "/api/users/profile", ghost, nil), http.StatusUnauthorized, "Not authorized, user not found")
}

func TestAdminRoutes_ForbidCustomers(t *testing.T) {
	s := newTestServer(t)
	_, customer := s.user(t, "c@example.com", models.RoleCustomer)
	_, admin := s.user(t, "a@example.com", models.RoleAdmin)
	p := s.product(t, "SKU-1")

	requireMessage(t, s.do(t, http.MethodDelete, "/api/products/"+p.ID.String(), customer, nil),
		http.StatusForbidden, "Not authorized as an admin")
	_, err := s.repo.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)

	require.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/admin/users", customer, nil).Code)

	requireMessage(t, s.do(t, http.MethodDelete, "/api/products/"+p.ID.String(), admin, nil), http.StatusOK, "Product removed")
	requireMessage(t, s.do(t, http.MethodGet, "/api/products/"+p.ID.String(), "", nil), http.StatusNotFound, "Product not found")
}

func TestAdminDeletes_LeaveRecordsForNonAdmins(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	victim, customer := s.user(t, "c@example.com", models.RoleCustomer)
	p := s.product(t, "SKU-1")
	item := &models.Portfolio{Name: "Wedding sign", Category: "Signs", Images: models.StringArray{"/uploads/sign.png"}}
	require.NoError(t, s.repo.CreatePortfolio(ctx, item))

	paths := []string{
		"/api/products/" + p.ID.String(),
		"/api/portfolio/" + item.ID.String(),
		"/api/admin/users/" + victim.ID.String(),
	}
	for _, path := range paths {
		requireMessage(t, s.do(t, http.MethodDelete, path, "", nil), http.StatusUnauthorized, "Not authorized, no token")
		requireMessage(t, s.do(t, http.MethodDelete, path, customer, nil), http.StatusForbidden, "Not authorized as an admin")
	}

	_, err := s.repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	_, err = s.repo.GetPortfolio(ctx, item.ID)
	require.NoError(t, err)
	_, err = s.repo.GetUserByID(ctx, victim.ID)
	require.NoError(t, err)
}

func TestProductCreate_ByAdmin(t *testing.T) {
	s := newTestServer(t)
	_, admin := s.user(t, "a@example.com", models.RoleAdmin)
	body := map[string]any{
		"name": "Lamp", "description": "Moon lamp", "price": 25.5, "sku": "LAMP-1", "category": "Lamps",
	}

	rec := s.do(t, http.MethodPost, "/api/products", admin, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "LAMP-1", decode(t, rec)["sku"])

	requireMessage(t, s.do(t, http.MethodPost, "/api/products", admin, body), http.StatusBadRequest, "Product with this SKU already exists")

	rec = s.do(t, http.MethodGet, "/api/products/search?q=moon", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	meta := decode(t, rec)["meta"].(map[string]any)
	require.EqualValues(t, 1, meta["total"])
}

func TestGuestCart(t *testing.T) {
	s := newTestServer(t)
	p := s.product(t, "SKU-1")

	requireMessage(t, s.do(t, http.MethodGet, "/api/cart", "", nil), http.StatusBadRequest, "Guest ID or user ID is required")
	requireMessage(t, s.do(t, http.MethodGet, "/api/cart?guestId=g-1", "", nil), http.StatusNotFound, "Cart not found")

	line := map[string]any{"productId": p.ID, "quantity": 2, "size": "M", "guestId": "g-1"}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/cart", "", line).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/cart", "", line).Code)

	rec := s.do(t, http.MethodGet, "/api/cart?guestId=g-1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["products"].([]any)
	require.Len(t, items, 1)
	require.EqualValues(t, 4, items[0].(map[string]any)["quantity"])

	_, token := s.user(t, "c@example.com", models.RoleCustomer)
	rec = s.do(t, http.MethodPost, "/api/cart/merge", token, map[string]string{"guestId": "g-1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/cart", token, nil).Code)
	require.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/cart?guestId=g-1", "", nil).Code)
}

func TestCheckoutLifecycle(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user(t, "c@example.com", models.RoleCustomer)
	_, stranger := s.user(t, "s@example.com", models.RoleCustomer)
	p := s.product(t, "SKU-1")

	requireMessage(t, s.do(t, http.MethodPost, "/api/checkout", token, map[string]any{"checkoutItems": []any{}}),
		http.StatusBadRequest, "No items in Checkout")

	rec := s.do(t, http.MethodPost, "/api/checkout", token, map[string]any{
		"checkoutItems":   []map[string]any{{"productId": p.ID, "name": p.Name, "price": 19.99, "quantity": 2}},
		"shippingAddress": map[string]string{"address": "1 Main St", "city": "Riga", "postalCode": "LV-1010", "country": "Latvia"},
		"paymentMethod":   "PayPal",
		"totalPrice":      39.98,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	co := decode(t, rec)
	require.Equal(t, false, co["isPaid"])
	require.Equal(t, "Pending", co["paymentStatus"])
	require.Equal(t, false, co["isFinalized"])
	id := co["_id"].(string)

	requireMessage(t, s.do(t, http.MethodGet, "/api/checkout/"+id, stranger, nil), http.StatusNotFound, "Checkout not found")
	requireMessage(t, s.do(t, http.MethodPost, "/api/checkout/"+id+"/finalize", token, nil), http.StatusBadRequest, "Checkout not paid")
	requireMessage(t, s.do(t, http.MethodPut, "/api/checkout/"+id+"/pay", token, map[string]string{"paymentStatus": "failed"}),
		http.StatusBadRequest, "Invalid payment status")

	rec = s.do(t, http.MethodPut, "/api/checkout/"+id+"/pay", token, map[string]any{
		"paymentStatus":  "PAID",
		"paymentDetails": map[string]string{"transactionId": "tx-1"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	paid := decode(t, rec)
	require.Equal(t, true, paid["isPaid"])
	require.Equal(t, "Paid", paid["paymentStatus"])

	rec = s.do(t, http.MethodPost, "/api/checkout/"+id+"/finalize", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode(t, rec)
	require.Equal(t, "Processing", order["status"])
	require.Equal(t, true, order["isPaid"])

	requireMessage(t, s.do(t, http.MethodPost, "/api/checkout/"+id+"/finalize", token, nil), http.StatusBadRequest, "Checkout already finalized")
	requireMessage(t, s.do(t, http.MethodPut, "/api/checkout/"+id+"/pay", token, map[string]string{"paymentStatus": "paid"}),
		http.StatusBadRequest, "Checkout already finalized")

	rec = s.do(t, http.MethodGet, "/api/orders/my-orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)

	orderID := order["_id"].(string)
	requireMessage(t, s.do(t, http.MethodGet, "/api/orders/"+orderID, stranger, nil), http.StatusNotFound, "Order not found")
}

func TestAdminOrders(t *testing.T) {
	s := newTestServer(t)
	_, admin := s.user(t, "a@example.com", models.RoleAdmin)
	u, _ := s.user(t, "c@example.com", models.RoleCustomer)

	o := &models.Order{
		Number:        7,
		UserID:        u.ID,
		TotalPrice:    decimal.NewFromInt(10),
		IsPaid:        true,
		PaymentStatus: models.PaymentPaid,
		Status:        models.OrderStatusProcessing,
	}
	require.NoError(t, s.repo.CreateOrder(context.Background(), o))
	path := "/api/admin/orders/" + o.ID.String()

	requireMessage(t, s.do(t, http.MethodPut, path, admin, map[string]string{"status": "Lost"}), http.StatusBadRequest, "Invalid order status")

	rec := s.do(t, http.MethodPut, path, admin, map[string]string{"status": "Delivered"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, true, decode(t, rec)["isDelivered"])

	rec = s.do(t, http.MethodGet, "/api/admin/orders/export", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	require.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
	require.Contains(t, rec.Body.String(), "order_number")

	requireMessage(t, s.do(t, http.MethodDelete, path, admin, nil), http.StatusOK, "Order deleted successfully")
}

func TestReviewsAndSubscribe(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user(t, "c@example.com", models.RoleCustomer)
	p := s.product(t, "SKU-1")

	review := map[string]any{"productId": p.ID, "rating": 4, "feedback": "Great", "userName": "Ann", "email": "ann@example.com"}
	rec := s.do(t, http.MethodPost, "/api/reviews", token, review)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "Review submitted successfully", decode(t, rec)["message"])

	review["rating"] = 5
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/reviews", token, review).Code)

	rec = s.do(t, http.MethodGet, "/api/reviews/"+p.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode(t, rec)
	require.Equal(t, true, sum["success"])
	require.EqualValues(t, 2, sum["count"])
	require.InDelta(t, 4.5, sum["averageRating"], 0.001)

	requireMessage(t, s.do(t, http.MethodPost, "/api/subscribe", "", map[string]string{"email": "n@example.com"}),
		http.StatusCreated, "You have been subscribed to our newsletter.")
	requireMessage(t, s.do(t, http.MethodPost, "/api/subscribe", "", map[string]string{"email": "n@example.com"}),
		http.StatusBadRequest, "Email already subscribed.")
}

func TestUpload(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user(t, "c@example.com", models.RoleCustomer)

	send := func(field string, data []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		part, err := w.CreateFormFile(field, "pic.png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		return rec
	}

	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}
	rec := send("image", png)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, decode(t, rec)["imageUrl"], "http://localhost:9000/uploads/")

	requireMessage(t, send("image", []byte("plain text")), http.StatusBadRequest, "Please upload an image")
	requireMessage(t, send("file", png), http.StatusBadRequest, "Please upload an image")
}
