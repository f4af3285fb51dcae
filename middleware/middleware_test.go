package middleware

import (
	"byway/models"
	"byway/utils/apperr"
	"byway/utils/token"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedParser map[string]*token.Claims

func (f fixedParser) Parse(raw string) (*token.Claims, error) {
	if c, ok := f[raw]; ok {
		return c, nil
	}
	return nil, token.ErrInvalidToken
}

var parser = fixedParser{
	"admin": {UserID: 1, Username: "admin", Role: models.RoleAdmin},
	"user":  {UserID: 7, Username: "sara", Role: models.RoleUser},
}

type envelope struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func call(t *testing.T, app *fiber.App, path, tok string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	var env envelope
	_ = sonic.Unmarshal(body, &env)
	return resp.StatusCode, env
}

func TestRules(t *testing.T) {
	admin := &Principal{UserID: 1, Role: models.RoleAdmin}
	user := &Principal{UserID: 7, Role: models.RoleUser}

	assert.True(t, Public(nil, 0))
	assert.False(t, Authenticated(nil, 0))
	assert.True(t, Authenticated(user, 0))
	assert.False(t, AdminOnly(nil, 0))
	assert.False(t, AdminOnly(user, 0))
	assert.True(t, AdminOnly(admin, 0))
	assert.True(t, SameUserOrAdmin(user, 7))
	assert.False(t, SameUserOrAdmin(user, 8))
	assert.False(t, SameUserOrAdmin(user, 0))
	assert.True(t, SameUserOrAdmin(admin, 8))
	assert.False(t, SameUserOrAdmin(nil, 7))
}

func TestJWTMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/me", JWTMiddleware(parser), func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, CurrentPrincipal(c).Username, nil)
	})

	code, _ := call(t, app, "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	code, _ = call(t, app, "/me", "forged")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	code, env := call(t, app, "/me", "user")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "sara", env.Message)
}

func TestCheckPermissionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(OptionalJWT(parser))
	app.Get("/users/:id", CheckPermissionMiddleware(SameUserOrAdmin), func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})

	code, _ := call(t, app, "/users/7", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	code, _ = call(t, app, "/users/8", "user")
	assert.Equal(t, fiber.StatusForbidden, code)
	code, _ = call(t, app, "/users/7", "user")
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = call(t, app, "/users/8", "admin")
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = call(t, app, "/users/7", "forged")
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestErrorResponseMapsKinds(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperr.Input("name", "Name is required"), fiber.StatusBadRequest},
		{apperr.NotFound("Course with ID 3 not found.", 3), fiber.StatusNotFound},
		{apperr.Conflict("Cannot delete course with enrolled users."), fiber.StatusConflict},
		{apperr.Auth(), fiber.StatusUnauthorized},
		{errors.New("connection reset"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error { return ErrorResponse(c, tc.err) })

		code, env := call(t, app, "/", "")
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.False(t, env.Status)
		if tc.code == fiber.StatusInternalServerError {
			assert.NotContains(t, env.Message, "connection reset")
		}
	}
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(RequestIDFrom(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Len(t, string(body), 36)
	assert.Equal(t, string(body), resp.Header.Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Header.Get("X-Request-ID"))
}
