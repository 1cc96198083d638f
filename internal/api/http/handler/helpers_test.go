package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/contacts-server/internal/api/http/context"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/testutil"
)

var testUser = model.User{ID: 7, Email: "a@x.com", IsVerified: true, Role: model.RoleUser}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler(testutil.MakeNoopLogger())})
}

// asUser stores user on the request context the way Authenticate does.
func asUser(cm *httpcontext.Manager, user model.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(cm.SetUserToContext(c.UserContext(), user))
		return c.Next()
	}
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp.StatusCode, body
}
