package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/contacts-server/internal/api/http/context"
	"github.com/dtroode/contacts-server/internal/model"
)

func TestRequireRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		user       *model.User
		required   model.Role
		wantStatus int
	}{
		{"admin on admin route", &model.User{ID: 1, Role: model.RoleAdmin}, model.RoleAdmin, 200},
		{"user on admin route", &model.User{ID: 2, Role: model.RoleUser}, model.RoleAdmin, 403},
		{"admin on user route", &model.User{ID: 1, Role: model.RoleAdmin}, model.RoleUser, 200},
		{"anonymous", nil, model.RoleUser, 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := httpcontext.NewManager()
			app := newTestApp()
			if tt.user != nil {
				user := *tt.user
				app.Use(func(c *fiber.Ctx) error {
					c.SetUserContext(cm.SetUserToContext(c.UserContext(), user))
					return c.Next()
				})
			}
			app.Get("/", RequireRole(tt.required, "", cm), func(c *fiber.Ctx) error {
				return c.SendString("ok")
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
