package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KosalaEhub/ticket-book/internal/attempts"
	"github.com/KosalaEhub/ticket-book/internal/middleware"
	"github.com/KosalaEhub/ticket-book/internal/model"
	"github.com/KosalaEhub/ticket-book/internal/repository"
	"github.com/KosalaEhub/ticket-book/internal/service"
)

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUserStore) Insert(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	copied := *user
	m.users[user.Email] = &copied
	return nil
}

func (m *memUserStore) UpdateProfile(_ context.Context, email string, p model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.FirstName, u.LastName = p.FirstName, p.LastName
	u.Phone, u.Country, u.City = p.Phone, p.Country, p.City
	return nil
}

func (m *memUserStore) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, email)
	return nil
}

type memUploadStore struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func (m *memUploadStore) Save(name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[name] = data
	return nil
}

const testSecret = "test-secret"

// newTestRouter wires the full site router over in-memory stores, the
// same shape the server wires in main.
func newTestRouter(t *testing.T) (*chi.Mux, *memUserStore) {
	t.Helper()

	users := &memUserStore{users: make(map[string]*model.User)}
	uploads := &memUploadStore{saved: make(map[string][]byte)}
	tracker := attempts.New(3)
	accounts := service.NewAccountService(users, uploads, tracker, testSecret, time.Hour)

	render := NewRenderer()
	authHandler := NewAuthHandler(accounts, time.Hour, render)
	profileHandler := NewProfileHandler(accounts, render)

	r := chi.NewRouter()
	r.Get("/register", authHandler.HandleShowRegister)
	r.Post("/register", authHandler.HandleRegister)
	r.Get("/login", authHandler.HandleShowLogin)
	r.Post("/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(testSecret))
		r.Get("/dashboard", profileHandler.HandleDashboard)
		r.Get("/profile", profileHandler.HandleShowProfile)
		r.Post("/profile", profileHandler.HandleUpdate)
		r.Get("/delete_profile", profileHandler.HandleDelete)
		r.Get("/logout", authHandler.HandleLogout)
	})

	return r, users
}

func registrationForm(t *testing.T, email string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"fname":    "Ann",
		"lname":    "Bell",
		"email":    email,
		"phone":    "555-0101",
		"country":  "LK",
		"city":     "Colombo",
		"password": "p1",
		"confirm":  "p1",
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("photo", "valid.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &body, mw.FormDataContentType()
}

func postRegister(t *testing.T, router http.Handler, email string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := registrationForm(t, email)
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func postLogin(t *testing.T, router http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return c
		}
	}
	return nil
}

func TestRegisterLoginDashboardRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postRegister(t, router, "a@x.com")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = postLogin(t, router, "a@x.com", "p1")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie, "login must set a session cookie")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	dashRec := httptest.NewRecorder()
	router.ServeHTTP(dashRec, req)

	require.Equal(t, http.StatusOK, dashRec.Code)
	assert.Contains(t, dashRec.Body.String(), "Welcome, Ann!")
}

func TestRegisterDuplicateRedirectsBack(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postRegister(t, router, "a@x.com")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postRegister(t, router, "A@X.COM")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/register", rec.Header().Get("Location"))
}

func TestLoginLockoutOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postRegister(t, router, "a@x.com")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	for i := 0; i < 3; i++ {
		rec = postLogin(t, router, "a@x.com", "wrong")
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		assert.Nil(t, sessionCookie(rec))
	}

	// Correct password no longer helps.
	rec = postLogin(t, router, "a@x.com", "p1")
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Nil(t, sessionCookie(rec))
}

func TestDashboardWithoutSessionRedirects(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestDeleteProfileClearsSessionAndRecord(t *testing.T) {
	router, users := newTestRouter(t)

	postRegister(t, router, "a@x.com")
	rec := postLogin(t, router, "a@x.com", "p1")
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/delete_profile", nil)
	req.AddCookie(cookie)
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, req)

	require.Equal(t, http.StatusSeeOther, delRec.Code)
	assert.Equal(t, "/register", delRec.Header().Get("Location"))
	assert.Empty(t, users.users)

	var cleared bool
	for _, c := range delRec.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "delete must expire the session cookie")
}

func TestUpdateProfileOverHTTP(t *testing.T) {
	router, users := newTestRouter(t)

	postRegister(t, router, "a@x.com")
	rec := postLogin(t, router, "a@x.com", "p1")
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)

	form := url.Values{
		"fname":   {"New"},
		"lname":   {"Name"},
		"phone":   {"555-0202"},
		"country": {"FR"},
		"city":    {"Paris"},
	}
	req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	updRec := httptest.NewRecorder()
	router.ServeHTTP(updRec, req)

	require.Equal(t, http.StatusSeeOther, updRec.Code)
	assert.Equal(t, "/profile", updRec.Header().Get("Location"))

	u := users.users["a@x.com"]
	require.NotNil(t, u)
	assert.Equal(t, "New", u.FirstName)
	assert.Equal(t, "Paris", u.City)
	assert.Equal(t, "a@x.com", u.Email)
}

func TestLogoutClearsSession(t *testing.T) {
	router, _ := newTestRouter(t)

	postRegister(t, router, "a@x.com")
	rec := postLogin(t, router, "a@x.com", "p1")
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	outRec := httptest.NewRecorder()
	router.ServeHTTP(outRec, req)

	require.Equal(t, http.StatusSeeOther, outRec.Code)
	assert.Equal(t, "/login", outRec.Header().Get("Location"))
}
