package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/infrastructure/database"
	"github.com/NefariousNGGA/backend/internal/usecase"
)

func createTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// createFileTestDB opens a file-backed database with several connections so
// concurrent writers really contend. Transactions begin immediately and wait
// on the busy timeout instead of failing on lock upgrade.
func createFileTestDB(t *testing.T, conns int) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "lair.db") + "?_busy_timeout=10000&_journal_mode=WAL&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedIdentity(t *testing.T, db *gorm.DB, handle string) domain.Identity {
	t.Helper()
	identity, err := NewIdentityRepository(db).Create(context.Background(), usecase.NewIdentity{
		Handle:         handle,
		DisplayName:    handle[1:],
		CredentialHash: "hash-of-" + handle,
		LookupKey:      uuid.NewString(),
	})
	require.NoError(t, err)
	return identity
}

func seedPost(t *testing.T, db *gorm.DB, author domain.Identity, title string) domain.Post {
	t.Helper()
	ctx := context.Background()
	submissions := NewSubmissionRepository(db)

	submission, err := submissions.Create(ctx, domain.Submission{
		IdentityID: author.ID,
		Title:      &title,
		Body:       "body of " + title,
		MoodTags:   []string{"dim"},
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)

	post, err := submissions.Publish(ctx, submission.ID)
	require.NoError(t, err)
	return post
}
