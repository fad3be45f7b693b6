package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/course-service/internal/api/http/handlers"
	"github.com/spec-kit/course-service/internal/auth"
	"github.com/spec-kit/course-service/internal/config"
	"github.com/spec-kit/course-service/internal/domain"
	"github.com/spec-kit/course-service/internal/events"
	"github.com/spec-kit/course-service/internal/identity"
	"github.com/spec-kit/course-service/internal/observability"
	"github.com/spec-kit/course-service/internal/persistence"
	"github.com/spec-kit/course-service/internal/service"
)

type memIdentityRepo struct {
	identities map[string]*domain.Identity
}

func (r *memIdentityRepo) Create(_ context.Context, identity *domain.Identity) error {
	r.identities[identity.UID] = identity
	return nil
}

func (r *memIdentityRepo) SetRoleClaim(_ context.Context, uid string, role domain.Role) error {
	identity, ok := r.identities[uid]
	if !ok {
		return pgx.ErrNoRows
	}
	identity.Role = role
	return nil
}

func (r *memIdentityRepo) GetByUID(_ context.Context, uid string) (*domain.Identity, error) {
	identity, ok := r.identities[uid]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return identity, nil
}

func (r *memIdentityRepo) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	for _, identity := range r.identities {
		if identity.Email == email {
			return identity, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memProfileRepo struct {
	profiles map[string]*domain.User
}

func (r *memProfileRepo) Create(_ context.Context, user *domain.User) error {
	r.profiles[user.UID] = user
	return nil
}

func (r *memProfileRepo) GetByUID(_ context.Context, uid string) (*domain.User, error) {
	user, ok := r.profiles[uid]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type memCourseRepo struct {
	courses []domain.Course
}

func (r *memCourseRepo) Create(_ context.Context, course *domain.Course) error {
	r.courses = append(r.courses, *course)
	return nil
}

func (r *memCourseRepo) List(_ context.Context) ([]domain.Course, error) {
	return r.courses, nil
}

type memLectureRepo struct {
	lectures map[string][]domain.Lecture
}

func (r *memLectureRepo) Create(_ context.Context, lecture *domain.Lecture) error {
	r.lectures[lecture.CourseID] = append(r.lectures[lecture.CourseID], *lecture)
	return nil
}

func (r *memLectureRepo) ListByCourse(_ context.Context, courseID string) ([]domain.Lecture, error) {
	return r.lectures[courseID], nil
}

type memRegistrationRepo struct {
	rows []domain.Registration
}

func (r *memRegistrationRepo) Create(_ context.Context, registration *domain.Registration) error {
	r.rows = append(r.rows, *registration)
	return nil
}

func (r *memRegistrationRepo) Exists(_ context.Context, userID, courseID string) (bool, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

type capturedMail struct {
	To      string
	Subject string
	Body    string
}

type captureNotifier struct {
	sent []capturedMail
	fail error
}

func (n *captureNotifier) Send(_ context.Context, to, subject, body string) error {
	if n.fail != nil {
		return n.fail
	}
	n.sent = append(n.sent, capturedMail{To: to, Subject: subject, Body: body})
	return nil
}

type fixture struct {
	app           *fiber.App
	courses       *memCourseRepo
	lectures      *memLectureRepo
	registrations *memRegistrationRepo
	notifier      *captureNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}}

	identities := &memIdentityRepo{identities: make(map[string]*domain.Identity)}
	profiles := &memProfileRepo{profiles: make(map[string]*domain.User)}
	courses := &memCourseRepo{}
	lectures := &memLectureRepo{lectures: make(map[string][]domain.Lecture)}
	registrations := &memRegistrationRepo{}
	notifier := &captureNotifier{}

	identityService := identity.NewService(cfg, identity.Dependencies{
		IdentityRepo: identities,
		ProfileRepo:  profiles,
	})
	dispatcher := events.NewInMemoryDispatcher()
	courseService := service.NewCourseService(courses, lectures, dispatcher)
	enrollmentService := service.NewEnrollmentService(service.EnrollmentDependencies{
		RegistrationRepo: registrations,
		LectureRepo:      lectures,
		Identity:         identityService,
		Notifier:         notifier,
		Dispatcher:       dispatcher,
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("course-service", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:           handlers.NewAuthHandler(identityService),
		Courses:        handlers.NewCoursesHandler(courseService, enrollmentService),
		Lectures:       handlers.NewLecturesHandler(courseService, enrollmentService),
		AuthMiddleware: auth.NewAuthMiddleware(identityService.TokenManager()),
	})

	return &fixture{
		app:           app,
		courses:       courses,
		lectures:      lectures,
		registrations: registrations,
		notifier:      notifier,
	}
}

func (f *fixture) request(t *testing.T, method, path, token string, body any) *nethttp.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (f *fixture) signUp(t *testing.T, email, password, role string) {
	t.Helper()
	resp := f.request(t, nethttp.MethodPost, "/signup", "", map[string]string{
		"email": email, "password": password, "role": role,
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func (f *fixture) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := f.request(t, nethttp.MethodPost, "/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	authData := data["auth"].(map[string]any)
	return authData["token"].(string)
}

func TestSignUpAndLogin(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, nethttp.MethodPost, "/signup", "", map[string]string{
		"email": "alice@x.com", "password": "s3cret", "role": "user",
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "alice@x.com", user["email"])
	assert.Equal(t, "user", user["role"])

	t.Run("duplicate email is a 400 with the provider message", func(t *testing.T) {
		resp := f.request(t, nethttp.MethodPost, "/signup", "", map[string]string{
			"email": "alice@x.com", "password": "other", "role": "user",
		})
		assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		errBody := body["error"].(map[string]any)
		assert.Equal(t, "email already registered", errBody["message"])
	})

	t.Run("login issues a usable token", func(t *testing.T) {
		token := f.login(t, "alice@x.com", "s3cret")
		assert.NotEmpty(t, token)
	})

	t.Run("login with wrong password is a 401", func(t *testing.T) {
		resp := f.request(t, nethttp.MethodPost, "/login", "", map[string]string{
			"email": "alice@x.com", "password": "wrong",
		})
		assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestProtectedEndpointsRejectMissingOrInvalidTokens(t *testing.T) {
	f := newFixture(t)

	endpoints := []struct {
		method string
		path   string
	}{
		{nethttp.MethodPost, "/courses"},
		{nethttp.MethodGet, "/courses"},
		{nethttp.MethodPost, "/courses/C1/register"},
		{nethttp.MethodPost, "/courses/C1/lectures"},
		{nethttp.MethodGet, "/courses/C1/lectures"},
	}

	for _, ep := range endpoints {
		t.Run(fmt.Sprintf("%s %s", ep.method, ep.path), func(t *testing.T) {
			resp := f.request(t, ep.method, ep.path, "", nil)
			assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
			resp.Body.Close()

			resp = f.request(t, ep.method, ep.path, "not-a-valid-token", nil)
			assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
			resp.Body.Close()
		})
	}

	// No side effects from rejected requests.
	assert.Empty(t, f.courses.courses)
	assert.Empty(t, f.registrations.rows)
	assert.Empty(t, f.notifier.sent)
}

func TestAdminOnlyEndpoints(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "alice@x.com", "s3cret", "user")
	userToken := f.login(t, "alice@x.com", "s3cret")
	f.signUp(t, "admin@x.com", "s3cret", "admin")
	adminToken := f.login(t, "admin@x.com", "s3cret")

	t.Run("non-admin creation is forbidden and writes nothing", func(t *testing.T) {
		resp := f.request(t, nethttp.MethodPost, "/courses", userToken, map[string]any{"name": "Algebra"})
		assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
		resp.Body.Close()

		resp = f.request(t, nethttp.MethodPost, "/courses/C1/lectures", userToken, map[string]any{"title": "Intro"})
		assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
		resp.Body.Close()

		assert.Empty(t, f.courses.courses)
		assert.Empty(t, f.lectures.lectures)
	})

	t.Run("admin creation succeeds", func(t *testing.T) {
		resp := f.request(t, nethttp.MethodPost, "/courses", adminToken, map[string]any{
			"name": "Algebra", "teacher": "Ngo", "price": 49.0,
		})
		require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		id := body["data"].(map[string]any)["id"].(string)
		assert.NotEmpty(t, id)

		resp = f.request(t, nethttp.MethodPost, "/courses/"+id+"/lectures", adminToken, map[string]any{
			"title": "Intro", "videoUrl": "https://v/1",
		})
		assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	})
}

// Mirrors the end-to-end flow: sign-up, course creation, registration with
// email, gated lecture access, and rejection of an unregistered user.
func TestRegistrationAndContentGatingScenario(t *testing.T) {
	f := newFixture(t)

	f.signUp(t, "alice@x.com", "s3cret", "user")
	aliceToken := f.login(t, "alice@x.com", "s3cret")

	resp := f.request(t, nethttp.MethodGet, "/courses", aliceToken, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Empty(t, body["data"])

	f.signUp(t, "admin@x.com", "s3cret", "admin")
	adminToken := f.login(t, "admin@x.com", "s3cret")

	resp = f.request(t, nethttp.MethodPost, "/courses", adminToken, map[string]any{"name": "Algebra"})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	courseID := decodeBody(t, resp)["data"].(map[string]any)["id"].(string)

	resp = f.request(t, nethttp.MethodPost, "/courses/"+courseID+"/register", aliceToken, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "alice@x.com", f.notifier.sent[0].To)
	assert.Contains(t, f.notifier.sent[0].Body, courseID)

	// Registered: empty lecture list, not a 403.
	resp = f.request(t, nethttp.MethodGet, "/courses/"+courseID+"/lectures", aliceToken, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	lectures, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Empty(t, lectures)

	// A never-registered user is rejected.
	f.signUp(t, "bob@x.com", "s3cret", "user")
	bobToken := f.login(t, "bob@x.com", "s3cret")

	resp = f.request(t, nethttp.MethodGet, "/courses/"+courseID+"/lectures", bobToken, nil)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestRegistrationEmailFailureStillPersistsRow(t *testing.T) {
	f := newFixture(t)
	f.notifier.fail = errors.New("relay unavailable")

	f.signUp(t, "alice@x.com", "s3cret", "user")
	aliceToken := f.login(t, "alice@x.com", "s3cret")
	f.signUp(t, "admin@x.com", "s3cret", "admin")
	adminToken := f.login(t, "admin@x.com", "s3cret")

	resp := f.request(t, nethttp.MethodPost, "/courses", adminToken, map[string]any{"name": "Algebra"})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	courseID := decodeBody(t, resp)["data"].(map[string]any)["id"].(string)

	// The send fails, so the client sees a 500...
	resp = f.request(t, nethttp.MethodPost, "/courses/"+courseID+"/register", aliceToken, nil)
	assert.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()

	// ...but the registration row was already written, so lecture access is
	// granted on the next request.
	require.Len(t, f.registrations.rows, 1)
	resp = f.request(t, nethttp.MethodGet, "/courses/"+courseID+"/lectures", aliceToken, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestDuplicateRegistrations(t *testing.T) {
	f := newFixture(t)

	f.signUp(t, "alice@x.com", "s3cret", "user")
	aliceToken := f.login(t, "alice@x.com", "s3cret")
	f.signUp(t, "admin@x.com", "s3cret", "admin")
	adminToken := f.login(t, "admin@x.com", "s3cret")

	resp := f.request(t, nethttp.MethodPost, "/courses", adminToken, map[string]any{"name": "Algebra"})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	courseID := decodeBody(t, resp)["data"].(map[string]any)["id"].(string)

	for i := 0; i < 2; i++ {
		resp = f.request(t, nethttp.MethodPost, "/courses/"+courseID+"/register", aliceToken, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	// No dedup: both registrations produced independent rows and both
	// confirmation emails were attempted.
	assert.Len(t, f.registrations.rows, 2)
	assert.NotEqual(t, f.registrations.rows[0].ID, f.registrations.rows[1].ID)
	assert.Len(t, f.notifier.sent, 2)

	resp = f.request(t, nethttp.MethodGet, "/courses/"+courseID+"/lectures", aliceToken, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
