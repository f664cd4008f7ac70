package database

import (
	"context"
	"database/sql"
)

// schema is executed statement by statement at startup. The
// UNIQUE KEY on bookings (room_id, week_start) is the load-bearing
// constraint of the whole service: it makes a single INSERT the atomic
// "check and reserve" for a slot, so concurrent requests for the same
// room and week are serialized by the engine and exactly one wins.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(190) NOT NULL,
		display_name VARCHAR(190) NOT NULL DEFAULT '',
		password_hash VARCHAR(100) NOT NULL,
		is_admin TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS rooms (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(190) NOT NULL,
		location VARCHAR(190) NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		color_index INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		room_id BIGINT UNSIGNED NOT NULL,
		week_start DATE NOT NULL,
		owner VARCHAR(190) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_bookings_room_week (room_id, week_start),
		KEY idx_bookings_week (week_start),
		CONSTRAINT fk_bookings_room FOREIGN KEY (room_id) REFERENCES rooms(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// InitSchema creates the tables if they do not exist yet. MySQL DDL is
// not transactional, so statements run one by one and the first failure
// aborts.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
