package main

import (
	"byway/cache"
	"byway/config"
	"byway/database"
	"byway/database/dbtest"
	"byway/utils/hasher"
	"byway/utils/logger"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type outbox struct {
	mu   sync.Mutex
	mail []string
}

func (o *outbox) Send(_ context.Context, to, subject, _ string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mail = append(o.mail, to+"|"+subject)
	return nil
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t   *testing.T
	app *fiber.App
}

func (c client) do(method, path, tok string, body interface{}) (int, envelope) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(c.t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	require.NoError(c.t, sonic.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func (c client) data(env envelope, dst interface{}) {
	c.t.Helper()
	require.NoError(c.t, sonic.Unmarshal(env.Data, dst))
}

func (c client) login(identifier, password string) string {
	c.t.Helper()
	code, env := c.do(http.MethodPost, "/api/auth/login", "", fiber.Map{"username": identifier, "password": password})
	require.Equal(c.t, fiber.StatusOK, code, env.Message)
	var tok struct {
		AccessToken string `json:"accessToken"`
	}
	c.data(env, &tok)
	return tok.AccessToken
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:               "test",
		CorsOrigins:          "*",
		JWTKey:               "test-secret",
		JWTIssuer:            "byway",
		JWTAudience:          "byway-clients",
		JWTExpiresInMinutes:  60,
		SaltRound:            bcrypt.MinCost,
		TaxPercent:           15,
		DefaultAdminName:     "Root",
		DefaultAdminUsername: "root",
		DefaultAdminEmail:    "root@byway.test",
		DefaultAdminPassword: "rootpass",
	}
}

func newTestClient(t *testing.T) (client, *outbox) {
	cfg := testConfig()
	db := dbtest.Open(t)
	require.NoError(t, database.NewSeeder(db, cfg, hasher.New(cfg.SaltRound), logger.Nop()).Run(context.Background()))

	mail := &outbox{}
	app := newApp(deps{cfg: cfg, db: db, log: logger.Nop(), notifier: mail, cache: cache.Noop{}})
	return client{t: t, app: app}, mail
}

type idOnly struct {
	ID uint `json:"id"`
}

func TestMarketplaceFlow(t *testing.T) {
	c, mail := newTestClient(t)
	admin := c.login("root", "rootpass")

	code, env := c.do(http.MethodPost, "/api/instructors", admin, fiber.Map{
		"name": "Jane Doe", "title": "backenddevelopment", "rate": 4.5, "description": "Go and SQL",
	})
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	var inst idOnly
	c.data(env, &inst)

	course := fiber.Map{
		"name": "Go Services", "category": "BackendDevelopment", "level": "Beginner",
		"rate": 4.8, "price": 100, "instructorId": inst.ID,
		"contents": []fiber.Map{{"name": "Intro", "numOfLectures": 10, "duration": 2}, {"name": "HTTP", "numOfLectures": 8, "duration": 3}},
	}
	code, _ = c.do(http.MethodPost, "/api/courses", "", course)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, env = c.do(http.MethodPost, "/api/courses", admin, course)
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	var created struct {
		ID             uint   `json:"id"`
		InstructorName string `json:"instructorName"`
		TotalLectures  int    `json:"totalLectures"`
	}
	c.data(env, &created)
	assert.Equal(t, "Jane Doe", created.InstructorName)
	assert.Equal(t, 18, created.TotalLectures)

	code, env = c.do(http.MethodPost, "/api/auth/register", "", fiber.Map{
		"firstName": "Sara", "lastName": "Ali", "username": "sara", "email": "Sara@Byway.Test", "password": "secret1",
	})
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	var reg struct {
		User idOnly `json:"user"`
	}
	c.data(env, &reg)
	user := c.login("sara@byway.test", "secret1")

	code, env = c.do(http.MethodPost, "/api/courses/filter", "", fiber.Map{
		"categories": []string{"BackendDevelopment"}, "numberOfLectures": "16-30", "maximumPrice": 150,
	})
	require.Equal(t, fiber.StatusOK, code, env.Message)
	var filtered struct {
		Items      []idOnly `json:"items"`
		TotalCount int64    `json:"totalCount"`
	}
	c.data(env, &filtered)
	assert.Equal(t, int64(1), filtered.TotalCount)

	code, env = c.do(http.MethodGet, "/api/courses/search?query=jane", "", nil)
	require.Equal(t, fiber.StatusOK, code)
	var found []idOnly
	c.data(env, &found)
	assert.Len(t, found, 1)

	code, _ = c.do(http.MethodPost, "/api/users/purchase", "", fiber.Map{"courseIds": []uint{created.ID}})
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, env = c.do(http.MethodPost, "/api/users/purchase", user, fiber.Map{"courseIds": []uint{created.ID, created.ID}})
	require.Equal(t, fiber.StatusOK, code, env.Message)
	var bought struct {
		Receipt struct {
			TotalPrice float64 `json:"totalPrice"`
		} `json:"receipt"`
	}
	c.data(env, &bought)
	assert.Equal(t, 115.0, bought.Receipt.TotalPrice)

	code, _ = c.do(http.MethodPost, "/api/users/purchase", user, fiber.Map{"courseIds": []uint{created.ID}})
	assert.Equal(t, fiber.StatusConflict, code)

	code, env = c.do(http.MethodGet, "/api/users/myCourses", user, nil)
	require.Equal(t, fiber.StatusOK, code)
	var mine []uint
	c.data(env, &mine)
	assert.Equal(t, []uint{created.ID}, mine)

	coursePath := fmt.Sprintf("/api/courses/%d", created.ID)
	code, _ = c.do(http.MethodPut, coursePath, admin, course)
	assert.Equal(t, fiber.StatusConflict, code)
	code, _ = c.do(http.MethodDelete, coursePath, admin, nil)
	assert.Equal(t, fiber.StatusConflict, code)
	code, _ = c.do(http.MethodDelete, fmt.Sprintf("/api/instructors/%d", inst.ID), admin, nil)
	assert.Equal(t, fiber.StatusConflict, code)

	code, env = c.do(http.MethodPost, "/api/instructors", admin, fiber.Map{
		"name": "John Roe", "title": "DevOps", "rate": 3.5,
	})
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	var idle idOnly
	c.data(env, &idle)
	idlePath := fmt.Sprintf("/api/instructors/%d", idle.ID)
	code, env = c.do(http.MethodDelete, idlePath, admin, nil)
	assert.Equal(t, fiber.StatusOK, code, env.Message)
	code, _ = c.do(http.MethodGet, idlePath, "", nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = c.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", reg.User.ID), admin, nil)
	assert.Equal(t, fiber.StatusConflict, code)

	code, _ = c.do(http.MethodGet, "/api/admin/stats", user, nil)
	assert.Equal(t, fiber.StatusForbidden, code)
	code, env = c.do(http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, fiber.StatusOK, code)
	var stats struct {
		UsersCount  int64   `json:"usersCount"`
		TotalWallet float64 `json:"totalWallet"`
	}
	c.data(env, &stats)
	assert.Equal(t, int64(1), stats.UsersCount)
	assert.Equal(t, 100.0, stats.TotalWallet)

	assert.Len(t, mail.mail, 2)
}

func TestUserRecordAccess(t *testing.T) {
	c, _ := newTestClient(t)

	for _, name := range []string{"omar", "lina"} {
		code, env := c.do(http.MethodPost, "/api/auth/register", "", fiber.Map{
			"firstName": name, "lastName": "Test", "username": name, "email": name + "@byway.test", "password": "secret1",
		})
		require.Equal(t, fiber.StatusCreated, code, env.Message)
	}
	omar := c.login("omar", "secret1")

	code, env := c.do(http.MethodGet, "/api/users/username/OMAR", "", nil)
	require.Equal(t, fiber.StatusOK, code)
	var me idOnly
	c.data(env, &me)

	code, _ = c.do(http.MethodGet, fmt.Sprintf("/api/users/%d", me.ID), omar, nil)
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = c.do(http.MethodGet, fmt.Sprintf("/api/users/%d", me.ID+1), omar, nil)
	assert.Equal(t, fiber.StatusForbidden, code)
	code, _ = c.do(http.MethodGet, "/api/users", omar, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = c.do(http.MethodGet, "/api/users/email/not-an-email", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestAuthErrors(t *testing.T) {
	c, _ := newTestClient(t)

	code, env := c.do(http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "root", "password": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, code)
	_, other := c.do(http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "ghost", "password": "rootpass"})
	assert.Equal(t, env.Message, other.Message)

	code, _ = c.do(http.MethodPost, "/api/auth/register", "", fiber.Map{
		"firstName": "A", "lastName": "B", "username": "root", "email": "new@byway.test", "password": "secret1",
	})
	assert.Equal(t, fiber.StatusConflict, code)

	code, _ = c.do(http.MethodGet, "/api/courses/1", "forged-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestCatalogQueryErrors(t *testing.T) {
	c, _ := newTestClient(t)

	code, _ := c.do(http.MethodGet, "/api/courses/search?query=%20", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
	code, _ = c.do(http.MethodPost, "/api/courses/filter", "", fiber.Map{"minimumPrice": 50, "maximumPrice": 10})
	assert.Equal(t, fiber.StatusBadRequest, code)
	code, _ = c.do(http.MethodPost, "/api/courses/filter", "", fiber.Map{"categories": []string{"Cooking"}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	code, _ = c.do(http.MethodPost, "/api/courses/cart", "", fiber.Map{"courseIds": []uint{}})
	assert.Equal(t, fiber.StatusBadRequest, code)
	code, _ = c.do(http.MethodGet, "/api/courses/top-courses/Cooking", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
	code, _ = c.do(http.MethodGet, "/api/courses/99", "", nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, env := c.do(http.MethodGet, "/api/courses/categories", "", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "[]", string(env.Data))
}
