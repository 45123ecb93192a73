package app

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"testing"

	structValidator "github.com/go-playground/validator/v10"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/haguru/bugtracker/config"
	"github.com/haguru/bugtracker/internal/interfaces/mocks"
	"github.com/haguru/bugtracker/internal/metrics"
	"github.com/haguru/bugtracker/internal/models"
	pkgmetrics "github.com/haguru/bugtracker/pkg/metrics"
	"github.com/haguru/bugtracker/pkg/zerolog"
)

func TestNewAppMissingConfig(t *testing.T) {
	_, err := NewApp("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestInitializeRepositories(t *testing.T) {
	db := mocks.NewMockDBClient(t)

	for _, dbType := range []string{config.DatabaseTypeMongo, config.DatabaseTypePostgres} {
		t.Run(dbType, func(t *testing.T) {
			repos, err := initializeRepositories(dbType, db)
			require.NoError(t, err)
			assert.NotNil(t, repos.users)
			assert.NotNil(t, repos.bugs)
			assert.NotNil(t, repos.roles)
		})
	}

	_, err := initializeRepositories("sqlite", db)
	assert.ErrorContains(t, err, "unsupported database type")

	_, err = initializeRepositories(config.DatabaseTypeMongo, nil)
	assert.Error(t, err)
}

func TestPrepareStorage(t *testing.T) {
	roles := []models.Role{
		{Name: "developer", Permissions: []string{"canReportBug"}},
		{Name: "technical manager", Permissions: []string{"canDeleteUser"}},
	}

	newRepos := func(t *testing.T) (*repositories, *mocks.MockUserRepository, *mocks.MockBugRepository, *mocks.MockRoleRepository) {
		users := mocks.NewMockUserRepository(t)
		bugs := mocks.NewMockBugRepository(t)
		roleRepo := mocks.NewMockRoleRepository(t)
		return &repositories{users: users, bugs: bugs, roles: roleRepo}, users, bugs, roleRepo
	}
	app := &App{
		Config: &config.ServiceConfig{Roles: roles, Database: config.Database{Type: config.DatabaseTypeMongo}},
		Logger: zerolog.NewNopLogger(),
	}

	t.Run("indices then roles", func(t *testing.T) {
		repos, users, bugs, roleRepo := newRepos(t)
		users.On("EnsureIndices", mock.Anything).Return(nil).Once()
		bugs.On("EnsureIndices", mock.Anything).Return(nil).Once()
		roleRepo.On("EnsureIndices", mock.Anything).Return(nil).Once()
		roleRepo.On("EnsureRole", mock.Anything, roles[0]).Return(nil).Once()
		roleRepo.On("EnsureRole", mock.Anything, roles[1]).Return(nil).Once()

		require.NoError(t, app.prepareStorage(context.Background(), repos))
	})

	t.Run("index failure stops early", func(t *testing.T) {
		repos, users, _, _ := newRepos(t)
		users.On("EnsureIndices", mock.Anything).Return(errors.New("no permission")).Once()

		err := app.prepareStorage(context.Background(), repos)
		assert.ErrorContains(t, err, "user indices")
	})

	t.Run("role seeding failure", func(t *testing.T) {
		repos, users, bugs, roleRepo := newRepos(t)
		users.On("EnsureIndices", mock.Anything).Return(nil).Once()
		bugs.On("EnsureIndices", mock.Anything).Return(nil).Once()
		roleRepo.On("EnsureIndices", mock.Anything).Return(nil).Once()
		roleRepo.On("EnsureRole", mock.Anything, roles[0]).Return(errors.New("db down")).Once()

		err := app.prepareStorage(context.Background(), repos)
		assert.ErrorContains(t, err, `failed to seed role "developer"`)
	})
}

func newServicesApp(t *testing.T, db *mocks.MockDBClient) *App {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	cfg := &config.ServiceConfig{
		ServiceName: "test",
		Host:        "localhost",
		Port:        "0",
		Database:    config.Database{Type: config.DatabaseTypeMongo},
	}
	cfg.ApplyDefaults()

	return &App{Config: cfg, Logger: zerolog.NewNopLogger(), db: db, privateKey: key}
}

func TestInitializeServices(t *testing.T) {
	m := pkgmetrics.NewMetrics("test")
	metrics.RegisterServiceMetrics(m)

	t.Run("wires the server and keeps the connection", func(t *testing.T) {
		db := mocks.NewMockDBClient(t)
		db.On("EnsureSchema", mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(3)

		app := newServicesApp(t, db)
		require.NoError(t, app.initializeServices(context.Background(), structValidator.New(), m))
		assert.NotNil(t, app.Server)
		assert.NotNil(t, app.monitor)
		db.AssertNotCalled(t, "Disconnect", mock.Anything)
	})

	t.Run("failure disconnects the database", func(t *testing.T) {
		db := mocks.NewMockDBClient(t)
		db.On("EnsureSchema", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("no permission")).Once()
		db.On("Disconnect", mock.Anything).Return(nil).Once()

		app := newServicesApp(t, db)
		err := app.initializeServices(context.Background(), structValidator.New(), m)
		assert.ErrorContains(t, err, "user indices")
		assert.Nil(t, app.Server)
	})
}
