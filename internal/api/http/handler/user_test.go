package handler

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/contacts-server/internal/api/http/context"
	"github.com/dtroode/contacts-server/internal/mocks"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/testutil"
)

func newUserApp(svc AuthService, user *model.User, maxSize int64) *fiber.App {
	cm := httpcontext.NewManager()
	h := NewUser(svc, cm, maxSize, testutil.MakeNoopLogger())
	app := newTestApp()
	if user != nil {
		app.Use(asUser(cm, *user))
	}
	app.Get("/me", h.Me)
	app.Put("/users/avatar", h.UpdateAvatar)
	return app
}

func avatarRequest(t *testing.T, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("PUT", "/users/avatar/", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func TestUser_Me(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAuthService(t)
	svc.On("Me", testUser).Return(testUser.Profile())

	status, body := do(t, newUserApp(svc, &testUser, 0), httptest.NewRequest("GET", "/me/", nil))
	assert.Equal(t, 200, status)
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, "user", body["role"])
	assert.NotContains(t, body, "password_hash")
}

func TestUser_Me_Unauthenticated(t *testing.T) {
	t.Parallel()

	status, body := do(t, newUserApp(mocks.NewAuthService(t), nil, 0), httptest.NewRequest("GET", "/me", nil))
	assert.Equal(t, 401, status)
	assert.Equal(t, "Not authenticated", body["detail"])
}

func TestUser_UpdateAvatar(t *testing.T) {
	t.Parallel()

	admin := model.User{ID: 1, Email: "admin@x.com", Role: model.RoleAdmin}
	url := "http://media/avatars/1"

	t.Run("success", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("UpdateAvatar", mock.Anything, admin, mock.MatchedBy(func(u model.Upload) bool {
			return u.Size == 3 && u.Reader != nil && u.ContentType == "application/octet-stream"
		})).Return(model.User{ID: 1, AvatarURL: &url}, nil)

		status, body := do(t, newUserApp(svc, &admin, 1024), avatarRequest(t, []byte("img")))
		assert.Equal(t, 200, status)
		assert.Equal(t, "Avatar updated successfully", body["message"])
		assert.Equal(t, url, body["avatar_url"])
	})

	t.Run("not admin", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("UpdateAvatar", mock.Anything, testUser, mock.Anything).
			Return(model.User{}, fmt.Errorf("role: %w", model.ErrForbidden))

		status, body := do(t, newUserApp(svc, &testUser, 1024), avatarRequest(t, []byte("img")))
		assert.Equal(t, 403, status)
		assert.Equal(t, "Only admin users can change their avatar", body["detail"])
	})

	t.Run("upload failure", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("UpdateAvatar", mock.Anything, admin, mock.Anything).
			Return(model.User{}, fmt.Errorf("%w: %v", model.ErrUpstream, errors.New("bucket gone")))

		status, body := do(t, newUserApp(svc, &admin, 1024), avatarRequest(t, []byte("img")))
		assert.Equal(t, 500, status)
		assert.Contains(t, body["detail"], "Error uploading avatar: ")
	})

	t.Run("too large", func(t *testing.T) {
		svc := mocks.NewAuthService(t)

		status, body := do(t, newUserApp(svc, &admin, 2), avatarRequest(t, []byte("img")))
		assert.Equal(t, 413, status)
		assert.Equal(t, "File too large", body["detail"])
	})

	t.Run("missing file", func(t *testing.T) {
		svc := mocks.NewAuthService(t)

		status, _ := do(t, newUserApp(svc, &admin, 1024), httptest.NewRequest("PUT", "/users/avatar", nil))
		assert.Equal(t, 422, status)
	})
}
