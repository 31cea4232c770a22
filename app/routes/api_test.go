package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet-dev/plantnet/app/controllers"
	"github.com/plantnet-dev/plantnet/app/models"
	"github.com/plantnet-dev/plantnet/app/notifications"
	"github.com/plantnet-dev/plantnet/app/services"
	"github.com/plantnet-dev/plantnet/pkg/auth"
	"github.com/plantnet-dev/plantnet/pkg/notification"
	"github.com/plantnet-dev/plantnet/pkg/rbac"
	"github.com/plantnet-dev/plantnet/pkg/router"
	"github.com/plantnet-dev/plantnet/pkg/testkit"
	"github.com/plantnet-dev/plantnet/pkg/workerpool"
)

// memStore backs every repository interface with maps, enough to drive the
// HTTP surface end to end.
type memStore struct {
	users  map[string]models.User
	plants map[string]models.Plant
	orders map[string]models.Order
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[string]models.User{},
		plants: map[string]models.Plant{},
		orders: map[string]models.Order{},
	}
}

// UserStore

func (m *memStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return models.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

func (m *memStore) Insert(_ context.Context, u models.User) (primitive.ObjectID, error) {
	u.ID = primitive.NewObjectID()
	m.users[u.Email] = u
	return u.ID, nil
}

func (m *memStore) SetStatus(_ context.Context, email, status string) (int64, error) {
	u := m.users[email]
	u.Status = status
	m.users[email] = u
	return 1, nil
}

func (m *memStore) SetRoleAndStatus(_ context.Context, email, role, status string) (int64, error) {
	u := m.users[email]
	u.Role = role
	u.Status = status
	m.users[email] = u
	return 1, nil
}

func (m *memStore) AllExcept(_ context.Context, email string) ([]models.User, error) {
	out := []models.User{}
	for _, u := range m.users {
		if u.Email != email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memStore) RoleOf(_ context.Context, email string) (string, error) {
	return m.users[email].Role, nil
}

// PlantStore

func (m *memStore) All(context.Context) ([]models.Plant, error) {
	out := []models.Plant{}
	for _, p := range m.plants {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) FindByID(_ context.Context, id string) (models.Plant, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return models.Plant{}, err
	}
	p, ok := m.plants[id]
	if !ok {
		return models.Plant{}, mongo.ErrNoDocuments
	}
	return p, nil
}

func (m *memStore) InsertPlant(_ context.Context, p models.Plant) (primitive.ObjectID, error) {
	p.ID = primitive.NewObjectID()
	m.plants[p.ID.Hex()] = p
	return p.ID, nil
}

func (m *memStore) DeleteByID(_ context.Context, id string) (int64, error) {
	delete(m.plants, id)
	return 1, nil
}

func (m *memStore) BySellerPlants(_ context.Context, email string) ([]models.Plant, error) {
	out := []models.Plant{}
	for _, p := range m.plants {
		if p.Seller.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) IncQuantity(_ context.Context, id string, delta int) (int64, error) {
	p, ok := m.plants[id]
	if !ok {
		return 0, nil
	}
	p.Quantity += delta
	m.plants[id] = p
	return 1, nil
}

func (m *memStore) EstimatedCount(context.Context) (int64, error) { return 0, nil }

// OrderStore

func (m *memStore) InsertOrder(_ context.Context, o models.Order) (primitive.ObjectID, error) {
	o.ID = primitive.NewObjectID()
	m.orders[o.ID.Hex()] = o
	return o.ID, nil
}

func (m *memStore) FindOrder(_ context.Context, id string) (models.Order, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return models.Order{}, err
	}
	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, mongo.ErrNoDocuments
	}
	return o, nil
}

func (m *memStore) DeleteOrder(_ context.Context, id string) (int64, error) {
	delete(m.orders, id)
	return 1, nil
}

func (m *memStore) SetOrderStatus(_ context.Context, id, status string) (int64, error) {
	o, ok := m.orders[id]
	if !ok {
		return 0, nil
	}
	o.Status = status
	m.orders[id] = o
	return 1, nil
}

func (m *memStore) ByCustomer(context.Context, string) ([]models.EnrichedOrder, error) {
	return []models.EnrichedOrder{}, nil
}
func (m *memStore) BySeller(context.Context, string) ([]models.EnrichedOrder, error) {
	return []models.EnrichedOrder{}, nil
}
func (m *memStore) Totals(context.Context) (float64, int64, error) { return 0, 0, nil }
func (m *memStore) Chart(context.Context) ([]models.ChartRow, error) {
	return []models.ChartRow{}, nil
}

// Adapters splitting the shared memStore into the per-collection interfaces.

type plantView struct{ *memStore }

func (v plantView) Insert(ctx context.Context, p models.Plant) (primitive.ObjectID, error) {
	return v.InsertPlant(ctx, p)
}
func (v plantView) BySeller(ctx context.Context, email string) ([]models.Plant, error) {
	return v.BySellerPlants(ctx, email)
}

type orderView struct{ *memStore }

func (v orderView) Insert(ctx context.Context, o models.Order) (primitive.ObjectID, error) {
	return v.InsertOrder(ctx, o)
}
func (v orderView) FindByID(ctx context.Context, id string) (models.Order, error) {
	return v.FindOrder(ctx, id)
}
func (v orderView) DeleteByID(ctx context.Context, id string) (int64, error) {
	return v.DeleteOrder(ctx, id)
}
func (v orderView) SetStatus(ctx context.Context, id, status string) (int64, error) {
	return v.SetOrderStatus(ctx, id, status)
}

func newTestRouter(store *memStore) *router.Router {
	return newTestRouterWithNotifier(store, nil)
}

func newTestRouterWithNotifier(store *memStore, notifier services.OrderNotifier) *router.Router {
	plants := plantView{store}
	orders := orderView{store}

	userSvc := services.NewUserService(store, nil)
	catalogSvc := services.NewCatalogService(plants)
	orderSvc := services.NewOrderService(orders, notifier)
	reportSvc := services.NewReportService(store, plants, orders)

	r := router.New()
	Register(r, Controllers{
		Auth:   controllers.NewAuthController(),
		Users:  controllers.NewUserController(userSvc),
		Plants: controllers.NewPlantController(catalogSvc),
		Orders: controllers.NewOrderController(orderSvc, reportSvc),
		Admin:  controllers.NewAdminController(userSvc, reportSvc),
		Roles:  rbac.RoleResolverFunc(store.RoleOf),
	})
	return r
}

func request(t *testing.T, r *router.Router, method, path, email string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	b := testkit.New(r.Handler()).Request(t, method, path)
	if body != nil {
		b.JSON(body)
	}
	if email != "" {
		token, err := auth.GenerateToken(email)
		require.NoError(t, err)
		b.Cookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	return b.Do()
}

func seededStore() *memStore {
	store := newMemStore()
	store.users["customer@x.com"] = models.User{Email: "customer@x.com", Role: models.RoleCustomer}
	store.users["seller@x.com"] = models.User{Email: "seller@x.com", Role: models.RoleSeller}
	store.users["admin@x.com"] = models.User{Email: "admin@x.com", Role: models.RoleAdmin}
	return store
}

func TestHomeBanner(t *testing.T) {
	r := newTestRouter(seededStore())
	rec := request(t, r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "plantNet")
}

func TestPublicCatalogNeedsNoAuth(t *testing.T) {
	r := newTestRouter(seededStore())
	rec := request(t, r, http.MethodGet, "/plants", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlaceOrderWithoutCookie(t *testing.T) {
	r := newTestRouter(seededStore())
	rec := request(t, r, http.MethodPost, "/orders", "", map[string]interface{}{})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"unauthorized access"}`, rec.Body.String())
}

func TestCustomerCannotCreatePlant(t *testing.T) {
	r := newTestRouter(seededStore())
	rec := request(t, r, http.MethodPost, "/plants", "customer@x.com", map[string]interface{}{
		"name": "Fern", "price": 10, "quantity": 5,
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Forbidden access!"}`, rec.Body.String())
}

func TestSellerCreatesPlant(t *testing.T) {
	store := seededStore()
	r := newTestRouter(store)

	rec := request(t, r, http.MethodPost, "/plants", "seller@x.com", map[string]interface{}{
		"name": "Fern", "price": 12.5, "quantity": 5,
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, store.plants, 1)
	for _, p := range store.plants {
		// Ownership comes from the session, not the body.
		assert.Equal(t, "seller@x.com", p.Seller.Email)
	}
}

func TestCancelDeliveredOrderConflicts(t *testing.T) {
	store := seededStore()
	order := models.Order{ID: primitive.NewObjectID(), Status: models.OrderDelivered}
	store.orders[order.ID.Hex()] = order
	r := newTestRouter(store)

	rec := request(t, r, http.MethodDelete, "/orders/delete/"+order.ID.Hex(), "customer@x.com", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Can't cancel once the product is delivered!", rec.Body.String())
	assert.Len(t, store.orders, 1)
}

func TestDuplicateSellerRequest(t *testing.T) {
	store := seededStore()
	u := store.users["customer@x.com"]
	u.Status = models.StatusRequested
	store.users["customer@x.com"] = u
	r := newTestRouter(store)

	rec := request(t, r, http.MethodPatch, "/users/customer@x.com", "customer@x.com", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t,
		"You have already requested to become a seller, Wait for the admin to accept the request.",
		rec.Body.String())
}

func TestPlaceOrderSurvivesMailFailure(t *testing.T) {
	notification.SetMailFunc(func(string, string, string) error {
		return errors.New("smtp down")
	})
	t.Cleanup(func() {
		notification.SetMailFunc(func(string, string, string) error { return nil })
	})

	store := seededStore()
	pool := workerpool.New(2)
	defer pool.Shutdown()
	r := newTestRouterWithNotifier(store, notifications.NewDispatcher(pool))

	rec := request(t, r, http.MethodPost, "/orders", "customer@x.com", map[string]interface{}{
		"customer": map[string]string{"name": "Cust", "email": "customer@x.com"},
		"seller":   "seller@x.com",
		"plantId":  primitive.NewObjectID().Hex(),
		"quantity": 2,
		"price":    20,
		"address":  "12 Fern Way",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		InsertedID string `json:"insertedId"`
	}
	testkit.DecodeJSON(t, rec, &out)
	assert.NotEmpty(t, out.InsertedID)
	assert.Len(t, store.orders, 1)
}

func TestSellerRequestForUnknownAccount(t *testing.T) {
	r := newTestRouter(seededStore())

	rec := request(t, r, http.MethodPatch, "/users/ghost@x.com", "ghost@x.com", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t,
		"You have already requested to become a seller, Wait for the admin to accept the request.",
		rec.Body.String())
}

func TestQuantityAdjustAcceptsAnyDirection(t *testing.T) {
	store := seededStore()
	p := models.Plant{ID: primitive.NewObjectID(), Quantity: 10,
		Seller: models.SellerRef{Email: "seller@x.com"}}
	store.plants[p.ID.Hex()] = p
	r := newTestRouter(store)

	// Checkout sends arbitrary status values; anything but "increase" decrements.
	rec := request(t, r, http.MethodPatch, "/plants/quantity/"+p.ID.Hex(), "customer@x.com",
		map[string]interface{}{"quantityToUpdate": 3, "status": "checkout"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 7, store.plants[p.ID.Hex()].Quantity)
}

func TestRoleLookupIsPublic(t *testing.T) {
	r := newTestRouter(seededStore())
	rec := request(t, r, http.MethodGet, "/users/role/seller@x.com", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"role":"seller"}`, rec.Body.String())
}

func TestAdminStatGates(t *testing.T) {
	r := newTestRouter(seededStore())

	rec := request(t, r, http.MethodGet, "/admin-stat", "seller@x.com", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = request(t, r, http.MethodGet, "/admin-stat", "admin@x.com", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIssueTokenSetsCookie(t *testing.T) {
	r := newTestRouter(seededStore())

	rec := request(t, r, http.MethodPost, "/jwt", "", map[string]string{"email": "customer@x.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	ck := testkit.CookieNamed(rec, auth.CookieName)
	require.NotNil(t, ck)

	claims, err := auth.ValidateToken(ck.Value)
	require.NoError(t, err)
	assert.Equal(t, "customer@x.com", claims.Email)
}
