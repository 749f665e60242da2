package migration

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDb(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDb.Close() })
	return db
}

func TestRunAppliesAllVersions(t *testing.T) {
	db := openDb(t)
	require.NoError(t, Run(db))

	var versions []int
	require.NoError(t, db.Table("schema_migration").Order("version").Pluck("version", &versions).Error)
	require.Len(t, versions, len(migrations))
	require.Equal(t, 1, versions[0])
	require.Equal(t, migrations[len(migrations)-1].version, versions[len(versions)-1])

	// Columns added by later migrations must exist.
	require.NoError(t, db.Exec(`SELECT is_public, pending_opponent_score FROM challenge LIMIT 1`).Error)
	require.NoError(t, db.Exec(`SELECT score_override, score_changed_from FROM challenge_participant LIMIT 1`).Error)
}

func TestRunIsIdempotent(t *testing.T) {
	db := openDb(t)
	require.NoError(t, Run(db))
	require.NoError(t, Run(db))

	var count int64
	require.NoError(t, db.Table("schema_migration").Count(&count).Error)
	require.EqualValues(t, len(migrations), count)
}

func TestCascadeDelete(t *testing.T) {
	db := openDb(t)
	require.NoError(t, Run(db))

	require.NoError(t, db.Exec(
		`INSERT INTO challenge (id, name, created_by, status, created_at, updated_at) VALUES ('c1', 'Chess', 'u1', 'active', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO challenge_participant (id, challenge_id, user_id, role, joined_at) VALUES ('p1', 'c1', 'u1', 'creator', CURRENT_TIMESTAMP)`,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO challenge_game (id, challenge_id, winner_id, is_draw, played_at, created_by, created_at) VALUES ('g1', 'c1', 'u1', FALSE, CURRENT_TIMESTAMP, 'u1', CURRENT_TIMESTAMP)`,
	).Error)

	require.NoError(t, db.Exec(`DELETE FROM challenge WHERE id = 'c1'`).Error)

	var count int64
	require.NoError(t, db.Table("challenge_participant").Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Table("challenge_game").Count(&count).Error)
	require.Zero(t, count)
}

func TestParticipantUniqueness(t *testing.T) {
	db := openDb(t)
	require.NoError(t, Run(db))

	require.NoError(t, db.Exec(
		`INSERT INTO challenge (id, name, created_by, status, created_at, updated_at) VALUES ('c1', 'Chess', 'u1', 'active', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO challenge_participant (id, challenge_id, user_id, role, joined_at) VALUES ('p1', 'c1', 'u1', 'creator', CURRENT_TIMESTAMP)`,
	).Error)
	require.Error(t, db.Exec(
		`INSERT INTO challenge_participant (id, challenge_id, user_id, role, joined_at) VALUES ('p2', 'c1', 'u1', 'participant', CURRENT_TIMESTAMP)`,
	).Error)
}
