//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/contacts-server/internal/model"
	repo "github.com/dtroode/contacts-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "contacts_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/contacts_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.Ping(ctx))

	ur := repo.NewUserRepository(conn.DB)
	cr := repo.NewContactRepository(conn.DB)

	owner, err := ur.Create(ctx, model.User{
		Email:        "owner@example.com",
		PasswordHash: "hash",
		IsActive:     true,
		Role:         model.RoleUser,
	})
	require.NoError(t, err)
	require.NotZero(t, owner.ID)
	require.False(t, owner.IsVerified)

	t.Run("user_repository", func(t *testing.T) {
		_, err := ur.Create(ctx, model.User{Email: "owner@example.com", PasswordHash: "x", Role: model.RoleUser})
		require.ErrorIs(t, err, model.ErrConflict)

		byEmail, err := ur.GetByEmail(ctx, owner.Email)
		require.NoError(t, err)
		require.Equal(t, owner.ID, byEmail.ID)

		avatar := "https://cdn.example.com/x.png"
		byEmail.IsVerified = true
		byEmail.AvatarURL = &avatar
		updated, err := ur.Update(ctx, byEmail)
		require.NoError(t, err)
		require.True(t, updated.IsVerified)
		require.Equal(t, avatar, *updated.AvatarURL)
		require.False(t, updated.UpdatedAt.Before(owner.UpdatedAt))

		byID, err := ur.GetByID(ctx, owner.ID)
		require.NoError(t, err)
		require.Equal(t, owner.Email, byID.Email)

		_, err = ur.GetByEmail(ctx, "ghost@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("contact_repository", func(t *testing.T) {
		other, err := ur.Create(ctx, model.User{Email: "other@example.com", PasswordHash: "hash", Role: model.RoleUser})
		require.NoError(t, err)

		c, err := cr.Create(ctx, model.Contact{
			FirstName: "Ann", LastName: "Lee", Email: "ann@example.com",
			Phone: "+100", Birthday: "1990-01-01", OwnerID: owner.ID,
		})
		require.NoError(t, err)
		require.NotZero(t, c.ID)

		list, err := cr.ListByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)

		list, err = cr.ListByOwner(ctx, other.ID)
		require.NoError(t, err)
		require.Empty(t, list)

		_, err = cr.GetByIDAndOwner(ctx, c.ID, other.ID)
		require.ErrorIs(t, err, model.ErrNotFound)

		c.FirstName = "Anna"
		c.OwnerID = other.ID
		_, err = cr.Update(ctx, c)
		require.ErrorIs(t, err, model.ErrNotFound)

		c.OwnerID = owner.ID
		updated, err := cr.Update(ctx, c)
		require.NoError(t, err)
		require.Equal(t, "Anna", updated.FirstName)

		require.ErrorIs(t, cr.Delete(ctx, c.ID, other.ID), model.ErrNotFound)
		require.NoError(t, cr.Delete(ctx, c.ID, owner.ID))

		_, err = cr.GetByIDAndOwner(ctx, c.ID, owner.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}
