package store

import "context"

func (q *Queries) AddGame(ctx context.Context, gameAddr, apiKeyHash string) error {
	_, err := q.db.Exec(ctx, `INSERT INTO games (game_addr, api_key_hash) VALUES ($1,$2)
		ON CONFLICT (game_addr) DO UPDATE SET api_key_hash = EXCLUDED.api_key_hash`, gameAddr, apiKeyHash)
	return err
}

func (q *Queries) RemoveGame(ctx context.Context, gameAddr string) error {
	_, err := q.db.Exec(ctx, `DELETE FROM games WHERE game_addr = $1`, gameAddr)
	return err
}

func (q *Queries) IsGameWhitelisted(ctx context.Context, gameAddr string) (bool, error) {
	row := q.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM games WHERE game_addr = $1)`, gameAddr)
	var ok bool
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (q *Queries) GetGameByAPIKey(ctx context.Context, apiKey string) (*Game, error) {
	hash := HashAPIKey(apiKey)
	row := q.db.QueryRow(ctx, `SELECT game_addr, api_key_hash, added_at FROM games WHERE api_key_hash = $1`, hash)
	var g Game
	if err := row.Scan(&g.GameAddr, &g.APIKeyHash, &g.AddedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &g, nil
}

func (q *Queries) ListGames(ctx context.Context) ([]Game, error) {
	rows, err := q.db.Query(ctx, `SELECT game_addr, api_key_hash, added_at FROM games ORDER BY added_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.GameAddr, &g.APIKeyHash, &g.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
