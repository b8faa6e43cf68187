package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"ludoteca/internal/models"
	"ludoteca/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoSet struct {
	users repositories.UserRepository
	games repositories.GameRepository
}

// backends returns every repository implementation, each on fresh storage.
func backends(t *testing.T) map[string]func(t *testing.T) repoSet {
	t.Helper()
	return map[string]func(t *testing.T) repoSet{
		"gorm": func(t *testing.T) repoSet {
			dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
			db, err := repositories.OpenDatabase("sqlite", dsn)
			require.NoError(t, err)
			sqlDB, err := db.DB()
			require.NoError(t, err)
			t.Cleanup(func() { sqlDB.Close() })
			return repoSet{
				users: repositories.NewGORMUserRepository(db),
				games: repositories.NewGORMGameRepository(db),
			}
		},
		"memory": func(t *testing.T) repoSet {
			return repoSet{
				users: repositories.NewMemoryUserRepository(),
				games: repositories.NewMemoryGameRepository(),
			}
		},
	}
}

func TestUserRepository(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := open(t).users

			user := &models.User{Name: "Ana", Email: "Ana@X.com", PasswordHash: "hash"}
			require.NoError(t, repo.Create(user))
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Equal(t, "ana@x.com", user.Email)

			byEmail, err := repo.GetByEmail("ANA@x.com")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byEmail.ID)
			assert.Equal(t, "hash", byEmail.PasswordHash)

			byID, err := repo.GetByID(user.ID)
			require.NoError(t, err)
			assert.Equal(t, "Ana", byID.Name)

			err = repo.Create(&models.User{Name: "Other", Email: "ana@X.COM", PasswordHash: "hash"})
			assert.ErrorIs(t, err, repositories.ErrDuplicateKey)

			_, err = repo.GetByEmail("nobody@x.com")
			assert.ErrorIs(t, err, repositories.ErrRecordNotFound)
			_, err = repo.GetByID(uuid.New())
			assert.ErrorIs(t, err, repositories.ErrRecordNotFound)
		})
	}
}

func TestGameRepository(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := open(t).games
			ana, bruno := uuid.New(), uuid.New()
			base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

			games := []*models.Game{
				{Title: "Chrono Trigger", Genre: "RPG", OwnerID: ana, CreatedAt: base},
				{Title: "Doom", Genre: "Shooter", OwnerID: bruno, CreatedAt: base.Add(time.Minute)},
				{Title: "Hades", Genre: "Roguelike", OwnerID: ana, CreatedAt: base.Add(2 * time.Minute)},
			}
			for _, g := range games {
				require.NoError(t, repo.Create(g))
				assert.NotEqual(t, uuid.Nil, g.ID)
			}

			all, err := repo.GetAll()
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "Hades", all[0].Title)
			assert.Equal(t, "Chrono Trigger", all[2].Title)

			mine, err := repo.GetByOwner(ana)
			require.NoError(t, err)
			require.Len(t, mine, 2)
			assert.Equal(t, "Hades", mine[0].Title)

			none, err := repo.GetByOwner(uuid.New())
			require.NoError(t, err)
			assert.Empty(t, none)

			stored, err := repo.GetByID(games[0].ID)
			require.NoError(t, err)
			stored.Rating = 5
			stored.Completed = true
			stored.Platform = ""
			stored.OwnerID = bruno
			require.NoError(t, repo.Update(stored))

			reloaded, err := repo.GetByID(games[0].ID)
			require.NoError(t, err)
			assert.Equal(t, 5.0, reloaded.Rating)
			assert.True(t, reloaded.Completed)
			assert.Equal(t, ana, reloaded.OwnerID)

			missing := &models.Game{ID: uuid.New(), Title: "Ghost", Genre: "None", OwnerID: ana}
			assert.ErrorIs(t, repo.Update(missing), repositories.ErrRecordNotFound)

			require.NoError(t, repo.Delete(games[1].ID))
			_, err = repo.GetByID(games[1].ID)
			assert.ErrorIs(t, err, repositories.ErrRecordNotFound)
			assert.ErrorIs(t, repo.Delete(games[1].ID), repositories.ErrRecordNotFound)

			all, err = repo.GetAll()
			require.NoError(t, err)
			assert.Len(t, all, 2)
		})
	}
}

func TestOpenDatabase_UnknownDriver(t *testing.T) {
	_, err := repositories.OpenDatabase("mongodb", "mongodb://localhost")
	assert.Error(t, err)
}
