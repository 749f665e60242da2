package migration

type migration struct {
	version    int
	statements []string
}

// Forward-only. Never edit an applied migration; append a new version.
// SQL stays portable between postgres and sqlite, which the tests run on.
var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE challenge (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				created_by TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'active',
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`,
			`CREATE TABLE challenge_participant (
				id TEXT PRIMARY KEY,
				challenge_id TEXT NOT NULL REFERENCES challenge(id) ON DELETE CASCADE,
				user_id TEXT NOT NULL,
				role TEXT NOT NULL DEFAULT 'participant',
				joined_at TIMESTAMP NOT NULL,
				UNIQUE(challenge_id, user_id)
			)`,
			`CREATE TABLE challenge_invitation (
				id TEXT PRIMARY KEY,
				challenge_id TEXT NOT NULL REFERENCES challenge(id) ON DELETE CASCADE,
				token TEXT NOT NULL UNIQUE,
				invited_by TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				created_at TIMESTAMP NOT NULL
			)`,
			`CREATE TABLE challenge_game (
				id TEXT PRIMARY KEY,
				challenge_id TEXT NOT NULL REFERENCES challenge(id) ON DELETE CASCADE,
				winner_id TEXT,
				is_draw BOOLEAN NOT NULL DEFAULT FALSE,
				notes TEXT NOT NULL DEFAULT '',
				gif_url TEXT,
				played_at TIMESTAMP NOT NULL,
				created_by TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL
			)`,
			`CREATE TABLE user_preference (
				user_id TEXT PRIMARY KEY,
				show_public_profile_pic BOOLEAN NOT NULL DEFAULT FALSE
			)`,
			`CREATE TABLE game_type (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL UNIQUE,
				created_by TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL
			)`,
		},
	},
	{version: 2, statements: []string{`ALTER TABLE challenge ADD COLUMN gif_url TEXT`}},
	{version: 3, statements: []string{`ALTER TABLE challenge ADD COLUMN is_public BOOLEAN NOT NULL DEFAULT TRUE`}},
	{version: 4, statements: []string{`ALTER TABLE challenge ADD COLUMN game_type_id TEXT`}},
	{version: 5, statements: []string{`ALTER TABLE challenge_participant ADD COLUMN score_override INTEGER`}},
	{version: 6, statements: []string{`ALTER TABLE challenge_participant ADD COLUMN score_changed_by TEXT`}},
	{version: 7, statements: []string{`ALTER TABLE challenge_participant ADD COLUMN score_changed_at TIMESTAMP`}},
	{version: 8, statements: []string{`ALTER TABLE challenge_participant ADD COLUMN score_changed_from INTEGER`}},
	{version: 9, statements: []string{`ALTER TABLE challenge ADD COLUMN pending_opponent_score INTEGER`}},
}
