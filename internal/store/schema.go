package store

import "context"

// DDL is the full schema. Statements are idempotent so ApplySchema can
// run at every boot.
const DDL = `
CREATE TABLE IF NOT EXISTS global_config (
	id INT PRIMARY KEY CHECK (id = 1),
	vault_addr TEXT NOT NULL,
	swap_router_addr TEXT NOT NULL,
	reward_source_token TEXT NOT NULL,
	reward_payout_token TEXT NOT NULL,
	epoch_duration_secs BIGINT NOT NULL,
	reserve_token_ids INT[] NOT NULL,
	paused BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS accounts (
	address TEXT PRIMARY KEY,
	api_key_hash TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS players (
	address TEXT PRIMARY KEY,
	schema_ver INT NOT NULL DEFAULT 2,
	data JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS epochs (
	epoch_number BIGINT PRIMARY KEY,
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ NOT NULL,
	is_finalized BOOLEAN NOT NULL DEFAULT FALSE,
	winning_faction INT,
	reward_pool NUMERIC(39,0) NOT NULL DEFAULT 0,
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS faction_standings (
	epoch_number BIGINT NOT NULL,
	faction_id INT NOT NULL,
	contributed NUMERIC(39,0) NOT NULL DEFAULT 0,
	PRIMARY KEY (epoch_number, faction_id)
);

CREATE TABLE IF NOT EXISTS epoch_players (
	epoch_number BIGINT NOT NULL,
	address TEXT NOT NULL,
	epoch_faction INT,
	epoch_balance_snapshot NUMERIC(39,0) NOT NULL DEFAULT 0,
	available_fp NUMERIC(39,0) NOT NULL DEFAULT 0,
	total_fp_contributed NUMERIC(39,0) NOT NULL DEFAULT 0,
	expires_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (epoch_number, address)
);

CREATE TABLE IF NOT EXISTS game_sessions (
	session_id BIGINT PRIMARY KEY,
	game_addr TEXT NOT NULL,
	player1 TEXT NOT NULL,
	player2 TEXT NOT NULL,
	wager1 NUMERIC(39,0) NOT NULL,
	wager2 NUMERIC(39,0) NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS reward_claims (
	address TEXT NOT NULL,
	epoch_number BIGINT NOT NULL,
	amount NUMERIC(39,0) NOT NULL,
	claimed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (address, epoch_number)
);

CREATE TABLE IF NOT EXISTS games (
	game_addr TEXT PRIMARY KEY,
	api_key_hash TEXT NOT NULL UNIQUE,
	added_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS fp_ledger (
	id TEXT PRIMARY KEY,
	address TEXT NOT NULL,
	epoch_number BIGINT NOT NULL,
	entry_type TEXT NOT NULL,
	amount NUMERIC(39,0) NOT NULL,
	ref_type TEXT NOT NULL,
	ref_id TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS fp_ledger_address_idx ON fp_ledger (address, created_at);
CREATE INDEX IF NOT EXISTS fp_ledger_epoch_idx ON fp_ledger (epoch_number);
CREATE INDEX IF NOT EXISTS epoch_players_expiry_idx ON epoch_players (expires_at);
CREATE INDEX IF NOT EXISTS game_sessions_expiry_idx ON game_sessions (expires_at);
`

func (s *Store) ApplySchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, DDL)
	return err
}
