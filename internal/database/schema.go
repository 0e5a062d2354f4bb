package database

import "context"

// CreateTables creates all necessary database tables
func (db *DB) CreateTables(ctx context.Context) error {
	db.logger.Info("creating database tables")

	// Ghost drafts table
	draftsTable := `
	CREATE TABLE IF NOT EXISTS ghost_drafts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		topic VARCHAR(255) NOT NULL,
		trend TEXT NOT NULL,
		assets JSONB NOT NULL,
		status VARCHAR(50) DEFAULT 'unread',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_ghost_drafts_status ON ghost_drafts(status);
	CREATE INDEX IF NOT EXISTS idx_ghost_drafts_created ON ghost_drafts(created_at DESC);
	`

	// Custom personas table
	personasTable := `
	CREATE TABLE IF NOT EXISTS custom_personas (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL,
		description TEXT,
		base_prompt TEXT NOT NULL,
		json_schema TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	// Scheduled posts table
	scheduleTable := `
	CREATE TABLE IF NOT EXISTS scheduled_posts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		content TEXT NOT NULL,
		platform VARCHAR(50) DEFAULT 'linkedin',
		status VARCHAR(50) DEFAULT 'scheduled',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		scheduled_at TIMESTAMP,
		published_at TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_scheduled_posts_status ON scheduled_posts(status);
	CREATE INDEX IF NOT EXISTS idx_scheduled_posts_at ON scheduled_posts(scheduled_at);
	`

	tables := []string{draftsTable, personasTable, scheduleTable}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, table); err != nil {
			return err
		}
	}

	db.logger.Info("all tables created")
	return nil
}
