package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishiseeds/catalog-service/internal/auth"
	"github.com/krishiseeds/catalog-service/internal/catalog"
	"github.com/krishiseeds/catalog-service/internal/database"
	"github.com/krishiseeds/catalog-service/internal/mail"
	"github.com/krishiseeds/catalog-service/internal/parsers"
	"github.com/krishiseeds/catalog-service/internal/search"
	"github.com/krishiseeds/catalog-service/internal/session"
	"github.com/krishiseeds/catalog-service/internal/storage"
	"github.com/krishiseeds/catalog-service/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- fakes ---

type fakeProducts struct {
	mu       sync.Mutex
	products map[string]types.Product
	listErr  error
	views    chan string
	lastList database.ListParams
}

func newFakeProducts(products ...types.Product) *fakeProducts {
	f := &fakeProducts{products: make(map[string]types.Product), views: make(chan string, 10)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProducts) List(_ context.Context, params database.ListParams) ([]types.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastList = params
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []types.Product{}
	for _, p := range f.products {
		if params.Featured != nil && p.Featured != *params.Featured {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) GetByIDOrSlug(_ context.Context, param string) (types.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[param]; ok {
		return p, nil
	}
	if p, ok := f.products[catalog.Slugify(param)]; ok {
		return p, nil
	}
	return types.Product{}, database.ErrProductNotFound
}

func (f *fakeProducts) IncrementViews(_ context.Context, id string) error {
	f.views <- id
	return nil
}

func (f *fakeProducts) Update(_ context.Context, id string, patch types.ProductPatch) (types.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return types.Product{}, database.ErrProductNotFound
	}
	p = patch.Apply(p, time.Now())
	f.products[id] = p
	return p, nil
}

type fakeContacts struct {
	created []types.ContactMessage
	err     error
}

func (f *fakeContacts) Create(_ context.Context, msg *types.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	msg.ID = "msg_test"
	f.created = append(f.created, *msg)
	return nil
}

type fakeMail struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (f *fakeMail) Send(msg mail.Message) <-chan struct{} {
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	f.mu.Unlock()
	done := make(chan struct{})
	close(done)
	return done
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]session.Session)}
}

func (f *fakeSessions) Create(email string) (session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := session.Session{Token: "tok-" + email, Email: email, ExpiresAt: time.Now().Add(time.Hour)}
	f.sessions[s.Token] = s
	return s, nil
}

func (f *fakeSessions) Get(token string) (session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return session.Session{}, session.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessions) Delete(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessions) TTL() time.Duration { return time.Hour }

type fakeAuth struct{}

func (fakeAuth) Check(email, password string) error {
	if email == "admin@example.com" && password == "correct-horse" {
		return nil
	}
	return auth.ErrInvalidCredentials
}

type fakeCorpus []search.Item

func (f fakeCorpus) SearchItems() []search.Item { return f }

type fakeVisits struct {
	mu     sync.Mutex
	visits []types.Visit
}

func (f *fakeVisits) Enqueue(v types.Visit) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visits = append(f.visits, v)
	return true
}

// --- fixtures ---

func fixtureProducts() []types.Product {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []types.Product{
		{
			ID: "hybrid-tomato", Name: "Hybrid Tomato", Category: types.CategoryVegetable,
			Description: "Firm red tomato", Seasonality: []types.Season{types.SeasonSummer},
			DifficultyLevel: types.DifficultyBeginner, Availability: true, Featured: true,
			LongDescription: "Long text", Specifications: []types.Specification{{ID: "yield", Name: "Yield", Value: "40 t/ha"}},
			CreatedAt: base,
		},
		{
			ID: "gw-496-wheat", Name: "GW 496 Wheat", Category: types.CategoryWheat,
			Description: "Rabi wheat", Seasonality: []types.Season{types.SeasonWinter},
			DifficultyLevel: types.DifficultyIntermediate, Availability: true,
			CreatedAt: base.Add(time.Hour),
		},
		{
			ID: "desi-chana", Name: "Desi Chana", Category: types.CategoryGram,
			Description: "Bold seeded gram", Seasonality: []types.Season{types.SeasonWinter},
			DifficultyLevel: types.DifficultyBeginner, Availability: false,
			CreatedAt: base.Add(2 * time.Hour),
		},
	}
}

type testEnv struct {
	router   *gin.Engine
	handler  *Handler
	products *fakeProducts
	contacts *fakeContacts
	mail     *fakeMail
	sessions *fakeSessions
	visits   *fakeVisits
	snapshot *catalog.Snapshot
}

func newTestEnv(t *testing.T, mutate ...func(*Deps)) *testEnv {
	t.Helper()
	env := &testEnv{
		products: newFakeProducts(fixtureProducts()...),
		contacts: &fakeContacts{},
		mail:     &fakeMail{},
		sessions: newFakeSessions(),
		visits:   &fakeVisits{},
		snapshot: catalog.NewSnapshot(&catalog.StaticSource{Products: fixtureProducts()}, nil, zerolog.Nop()),
	}
	env.snapshot.Reload(context.Background())

	deps := Deps{
		Products: env.products,
		Contacts: env.contacts,
		Catalog:  env.snapshot,
		Sessions: env.sessions,
		Auth:     fakeAuth{},
		Mail:     env.mail,
		Content: fakeCorpus{
			{Type: search.TypeArticle, Title: "Growing tomato in summer", Description: "Irrigation tips", URL: "/blog/tomato"},
			{Type: search.TypePage, Title: "About us", Description: "Seed company since 1990", URL: "/about"},
		},
		Visits: env.visits,
		Logger: zerolog.Nop(),
	}
	for _, m := range mutate {
		m(&deps)
	}
	env.handler = New(deps)
	env.router = SetupRouter(env.handler, RouterOptions{Logger: zerolog.Nop(), EnableDocs: true})
	return env
}

func (e *testEnv) do(method, path string, body any, header ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	s, err := e.sessions.Create("admin@example.com")
	require.NoError(t, err)
	return s.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// --- tests ---

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "not configured", resp.Database)
	assert.Equal(t, 3, resp.Catalog.Products)

	env = newTestEnv(t, func(d *Deps) {
		d.DBStatus = func(context.Context) error { return errors.New("down") }
	})
	w = env.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/products?featured=true&keyword=%20tomato%20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ListProductsResponse](t, w)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "hybrid-tomato", resp.Products[0].ID)
	assert.Equal(t, "tomato", env.products.lastList.Keyword)

	// Summaries leave out the heavy fields
	assert.NotContains(t, w.Body.String(), "longDescription")
	assert.NotContains(t, w.Body.String(), "specifications")

	w = env.do(http.MethodGet, "/api/products?featured=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.products.listErr = errors.New("db down")
	w = env.do(http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, `{"error":"Failed to fetch products"}`, w.Body.String())
}

func TestGetProductCountsView(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/products/GW%20496%20Wheat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[types.Product](t, w)
	assert.Equal(t, "gw-496-wheat", p.ID)

	select {
	case id := <-env.products.views:
		assert.Equal(t, "gw-496-wheat", id)
	case <-time.After(2 * time.Second):
		t.Fatal("view was not counted")
	}

	w = env.do(http.MethodGet, "/api/products/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, `{"error":"Product not found"}`, w.Body.String())
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	patch := map[string]any{"featured": true, "description": "Updated"}

	w := env.do(http.MethodPut, "/api/products/desi-chana", patch)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := env.login(t)
	w = env.do(http.MethodPut, "/api/products/desi-chana", patch, "X-Session-Token", token)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[types.Product](t, w)
	assert.True(t, p.Featured)
	assert.Equal(t, "Updated", p.Description)
	// Unspecified fields keep their values
	assert.Equal(t, "Desi Chana", p.Name)
	assert.Equal(t, types.CategoryGram, p.Category)

	w = env.do(http.MethodPut, "/api/products/desi-chana", map[string]any{}, "X-Session-Token", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPut, "/api/products/desi-chana", map[string]any{"difficultyLevel": "Impossible"}, "X-Session-Token", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPut, "/api/products/missing", patch, "X-Session-Token", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitContact(t *testing.T) {
	env := newTestEnv(t)
	valid := map[string]string{
		"name": "Ravi", "email": "ravi@example.com", "category": "dealership",
		"subject": "Dealer enquiry", "message": "Interested in dealership",
	}

	w := env.do(http.MethodPost, "/api/contact", valid)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode[map[string]string](t, w)
	assert.Equal(t, map[string]string{
		"_id": "msg_test", "name": "Ravi", "email": "ravi@example.com", "message": "Interested in dealership",
	}, resp)
	require.Len(t, env.contacts.created, 1)
	require.Len(t, env.mail.sent, 1)
	assert.Equal(t, "ravi@example.com", env.mail.sent[0].To)

	for _, field := range []string{"name", "email", "category", "subject", "message"} {
		t.Run("missing "+field, func(t *testing.T) {
			body := map[string]string{}
			for k, v := range valid {
				body[k] = v
			}
			body[field] = "  "
			w := env.do(http.MethodPost, "/api/contact", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, `{"error":"Please fill in all required fields"}`, w.Body.String())
		})
	}

	bad := map[string]string{}
	for k, v := range valid {
		bad[k] = v
	}
	bad["email"] = "farmer-at-village"
	w = env.do(http.MethodPost, "/api/contact", bad)
	assert.Equal(t, http.StatusCreated, w.Code, "email format is not checked server side")
	assert.Equal(t, "farmer-at-village", decode[map[string]string](t, w)["email"])

	w = env.do(http.MethodPost, "/api/contact", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitContactStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.contacts.err = errors.New("insert failed")
	w := env.do(http.MethodPost, "/api/contact", map[string]string{
		"name": "Ravi", "email": "ravi@example.com", "category": "general",
		"subject": "Hi", "message": "Hello",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, env.mail.sent)
}

func TestLoginLogoutSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "correct-horse"})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@example.com", decode[SessionResponse](t, w).Email)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCatalog(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/catalog?season=Winter&difficulty=beginner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[CatalogResponse](t, w)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "desi-chana", resp.Products[0].ID)
	assert.Equal(t, 3, resp.Stats.TotalProducts)
	assert.Equal(t, 1, resp.Stats.FilteredCount)
	assert.Equal(t, 2, resp.Facets.Seasons[types.SeasonWinter])

	w = env.do(http.MethodGet, "/api/catalog?sort=createdAt&dir=desc", nil)
	resp = decode[CatalogResponse](t, w)
	require.Len(t, resp.Products, 3)
	assert.Equal(t, "desi-chana", resp.Products[0].ID)
	assert.Equal(t, "hybrid-tomato", resp.Products[2].ID)

	// Unknown sort falls back to name ascending
	w = env.do(http.MethodGet, "/api/catalog?sort=price", nil)
	resp = decode[CatalogResponse](t, w)
	assert.Equal(t, "Desi Chana", resp.Products[0].Name)
	assert.EqualValues(t, "name", resp.Sort.Field)

	w = env.do(http.MethodGet, "/api/catalog?available=true&q=wheat", nil)
	resp = decode[CatalogResponse](t, w)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "gw-496-wheat", resp.Products[0].ID)
}

func TestGetCatalogProduct(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/api/catalog/hybrid-tomato", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/catalog/Hybrid%20Tomato", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/catalog/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReloadCatalogRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/api/catalog/reload", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/catalog/reload", nil, "Authorization", "Bearer "+env.login(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decode[ReloadResponse](t, w).Products)
}

func TestUploadCatalog(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	source := catalog.NewFileSource(store, "catalog.csv", parsers.Options{}, zerolog.Nop())
	snapshot := catalog.NewSnapshot(source, nil, zerolog.Nop())

	env := newTestEnv(t, func(d *Deps) {
		d.Uploads = store
		d.CatalogKey = "catalog.csv"
		d.Catalog = snapshot
	})
	token := env.login(t)

	upload := func(filename, content string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPut, "/api/catalog/source", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("X-Session-Token", token)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		return w
	}

	w := upload("catalog.xlsx", "x")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	csvContent := "Product Name,Crop,Season,Description\n" +
		"Hybrid Okra,Okra,Kharif,Early okra\n" +
		"Hybrid Okra,Okra,Summer,Second okra\n" +
		",Wheat,Rabi,No name\n"
	w = upload("new-catalog.csv", csvContent)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[UploadResponse](t, w)
	assert.Equal(t, 2, resp.Products)
	assert.Equal(t, 3, resp.Rows)
	assert.Equal(t, 1, resp.Skipped)
	assert.NotEmpty(t, resp.Warnings)

	p, ok := snapshot.Find("hybrid-okra-2")
	require.True(t, ok)
	assert.Equal(t, []types.Season{types.SeasonSummer}, p.Seasonality)

	info, err := store.GetInfo(context.Background(), "catalog.csv")
	require.NoError(t, err)
	require.NotNil(t, info.Metadata)
	assert.Equal(t, "admin@example.com", info.Metadata.UploadedBy)
}

func TestUploadCatalogDisabled(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPut, "/api/catalog/source", nil, "X-Session-Token", env.login(t))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/search?q=tomato", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[search.Result](t, w)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 2, res.Matches)
	require.NotEmpty(t, res.Hits)
	assert.Equal(t, "Hybrid Tomato", res.Hits[0].Title)

	w = env.do(http.MethodGet, "/api/search?q=tomato&matchesOnly=true&type=article", nil)
	res = decode[search.Result](t, w)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, search.TypeArticle, res.Hits[0].Type)

	w = env.do(http.MethodGet, "/api/search?q=tomato&page=1000000000000000001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res = decode[search.Result](t, w)
	assert.Empty(t, res.Hits)
	assert.Equal(t, 5, res.Total)

	w = env.do(http.MethodGet, "/api/search?perPage=500", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordVisit(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/visits", map[string]string{"path": "/products/hybrid-tomato", "referrer": "https://google.com"},
		"User-Agent", "test-agent")
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, env.visits.visits, 1)
	v := env.visits.visits[0]
	assert.Equal(t, "/products/hybrid-tomato", v.Path)
	assert.Equal(t, "test-agent", v.UserAgent)
	assert.NotEmpty(t, v.VisitorID)

	w = env.do(http.MethodPost, "/api/visits", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/visits", map[string]string{"path": "products"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
