package store

import "context"

func (q *Queries) CreateAccount(ctx context.Context, address, apiKeyHash string) error {
	_, err := q.db.Exec(ctx, `INSERT INTO accounts (address, api_key_hash) VALUES ($1,$2)`, address, apiKeyHash)
	return mapConflict(err)
}

func (q *Queries) GetAccountByAPIKey(ctx context.Context, apiKey string) (*Account, error) {
	hash := HashAPIKey(apiKey)
	row := q.db.QueryRow(ctx, `SELECT address, api_key_hash, created_at FROM accounts WHERE api_key_hash = $1`, hash)
	var a Account
	if err := row.Scan(&a.Address, &a.APIKeyHash, &a.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &a, nil
}

func (q *Queries) GetAccount(ctx context.Context, address string) (*Account, error) {
	row := q.db.QueryRow(ctx, `SELECT address, api_key_hash, created_at FROM accounts WHERE address = $1`, address)
	var a Account
	if err := row.Scan(&a.Address, &a.APIKeyHash, &a.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &a, nil
}
