package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
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

const contactJSON = `{"first_name":"Ann","last_name":"Lee","email":"ann@x.com","phone":"+1","birthday":"1990-01-01"}`

var contactIn = model.ContactInput{FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Phone: "+1", Birthday: "1990-01-01"}

func newContactApp(svc ContactService) *fiber.App {
	cm := httpcontext.NewManager()
	h := NewContact(svc, cm, testutil.MakeNoopLogger())
	app := newTestApp()
	app.Use(asUser(cm, testUser))
	app.Post("/contacts", h.Create)
	app.Get("/contacts", h.List)
	app.Get("/contacts/:id", h.Get)
	app.Put("/contacts/:id", h.Update)
	app.Delete("/contacts/:id", h.Delete)
	return app
}

func TestContact_Create(t *testing.T) {
	t.Parallel()

	svc := mocks.NewContactService(t)
	svc.On("Create", mock.Anything, testUser.ID, contactIn).
		Return(contactIn.Apply(model.Contact{ID: 3, OwnerID: testUser.ID}), nil)

	req := httptest.NewRequest("POST", "/contacts/", strings.NewReader(contactJSON))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	status, body := do(t, newContactApp(svc), req)

	assert.Equal(t, 200, status)
	assert.EqualValues(t, 3, body["id"])
	assert.Equal(t, "Ann", body["first_name"])
	assert.NotContains(t, body, "owner_id")
}

func TestContact_Create_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"missing field", fiber.MIMEApplicationJSON, `{"first_name":"Ann"}`},
		{"bad email", fiber.MIMEApplicationJSON, strings.Replace(contactJSON, "ann@x.com", "ann", 1)},
		{"malformed json", fiber.MIMEApplicationJSON, `{"first_name":`},
		{"no content type", "", contactJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewContactService(t)

			req := httptest.NewRequest("POST", "/contacts", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(fiber.HeaderContentType, tt.contentType)
			}
			status, _ := do(t, newContactApp(svc), req)
			assert.Equal(t, 422, status)
		})
	}
}

func TestContact_List(t *testing.T) {
	t.Parallel()

	t.Run("empty list is an array", func(t *testing.T) {
		svc := mocks.NewContactService(t)
		svc.On("List", mock.Anything, testUser.ID).Return(nil, nil)

		resp, err := newContactApp(svc).Test(httptest.NewRequest("GET", "/contacts/", nil))
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.JSONEq(t, `[]`, string(raw))
	})

	t.Run("own contacts", func(t *testing.T) {
		svc := mocks.NewContactService(t)
		svc.On("List", mock.Anything, testUser.ID).Return([]model.Contact{{ID: 1}, {ID: 2}}, nil)

		resp, err := newContactApp(svc).Test(httptest.NewRequest("GET", "/contacts", nil))
		require.NoError(t, err)
		var out []model.Contact
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Len(t, out, 2)
	})
}

func TestContact_ByID(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("get contact 9: %w", model.ErrNotFound)

	t.Run("get", func(t *testing.T) {
		svc := mocks.NewContactService(t)
		svc.On("Get", mock.Anything, testUser.ID, int64(9)).Return(model.Contact{ID: 9}, nil)

		status, body := do(t, newContactApp(svc), httptest.NewRequest("GET", "/contacts/9", nil))
		assert.Equal(t, 200, status)
		assert.EqualValues(t, 9, body["id"])
	})

	t.Run("get not owned", func(t *testing.T) {
		svc := mocks.NewContactService(t)
		svc.On("Get", mock.Anything, testUser.ID, int64(9)).Return(model.Contact{}, notFound)

		status, body := do(t, newContactApp(svc), httptest.NewRequest("GET", "/contacts/9", nil))
		assert.Equal(t, 404, status)
		assert.Equal(t, "Contact not found", body["detail"])
	})

	t.Run("bad id", func(t *testing.T) {
		svc := mocks.NewContactService(t)

		status, _ := do(t, newContactApp(svc), httptest.NewRequest("GET", "/contacts/abc", nil))
		assert.Equal(t, 422, status)
	})

	t.Run("update", func(t *testing.T) {
		svc := mocks.NewContactService(t)
		svc.On("Update", mock.Anything, testUser.ID, int64(9), contactIn).
			Return(contactIn.Apply(model.Contact{ID: 9}), nil)

		req := httptest.NewRequest("PUT", "/contacts/9", strings.NewReader(contactJSON))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		status, body := do(t, newContactApp(svc), req)
		assert.Equal(t, 200, status)
		assert.Equal(t, "Lee", body["last_name"])
	})

	t.Run("update not owned", func(t *testing.T) {
		svc := mocks.NewContactService(t)
		svc.On("Update", mock.Anything, testUser.ID, int64(9), contactIn).Return(model.Contact{}, notFound)

		req := httptest.NewRequest("PUT", "/contacts/9", strings.NewReader(contactJSON))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		status, _ := do(t, newContactApp(svc), req)
		assert.Equal(t, 404, status)
	})

	t.Run("delete echoes contact", func(t *testing.T) {
		svc := mocks.NewContactService(t)
		svc.On("Delete", mock.Anything, testUser.ID, int64(9)).Return(model.Contact{ID: 9, FirstName: "Ann"}, nil)

		status, body := do(t, newContactApp(svc), httptest.NewRequest("DELETE", "/contacts/9", nil))
		assert.Equal(t, 200, status)
		assert.Equal(t, "Ann", body["first_name"])
	})

	t.Run("delete not owned", func(t *testing.T) {
		svc := mocks.NewContactService(t)
		svc.On("Delete", mock.Anything, testUser.ID, int64(9)).Return(model.Contact{}, notFound)

		status, body := do(t, newContactApp(svc), httptest.NewRequest("DELETE", "/contacts/9", nil))
		assert.Equal(t, 404, status)
		assert.Equal(t, "Contact not found", body["detail"])
	})
}
