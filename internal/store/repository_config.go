package store

import "context"

func (q *Queries) GetGlobalConfig(ctx context.Context) (*GlobalConfig, error) {
	row := q.db.QueryRow(ctx, `SELECT vault_addr, swap_router_addr, reward_source_token, reward_payout_token, epoch_duration_secs, reserve_token_ids, paused, updated_at FROM global_config WHERE id = 1`)
	var c GlobalConfig
	if err := row.Scan(&c.VaultAddr, &c.SwapRouterAddr, &c.RewardSourceToken, &c.RewardPayoutToken, &c.EpochDurationSecs, &c.ReserveTokenIDs, &c.Paused, &c.UpdatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

// SeedGlobalConfig writes the config row only when it does not exist.
func (q *Queries) SeedGlobalConfig(ctx context.Context, c *GlobalConfig) error {
	_, err := q.db.Exec(ctx, `INSERT INTO global_config (id, vault_addr, swap_router_addr, reward_source_token, reward_payout_token, epoch_duration_secs, reserve_token_ids) VALUES (1,$1,$2,$3,$4,$5,$6) ON CONFLICT (id) DO NOTHING`,
		c.VaultAddr, c.SwapRouterAddr, c.RewardSourceToken, c.RewardPayoutToken, c.EpochDurationSecs, c.ReserveTokenIDs)
	return err
}

func (q *Queries) UpdateGlobalConfig(ctx context.Context, c *GlobalConfig) error {
	tag, err := q.db.Exec(ctx, `UPDATE global_config SET vault_addr=$1, swap_router_addr=$2, reward_source_token=$3, reward_payout_token=$4, epoch_duration_secs=$5, reserve_token_ids=$6, updated_at=now() WHERE id = 1`,
		c.VaultAddr, c.SwapRouterAddr, c.RewardSourceToken, c.RewardPayoutToken, c.EpochDurationSecs, c.ReserveTokenIDs)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) SetPaused(ctx context.Context, paused bool) error {
	tag, err := q.db.Exec(ctx, `UPDATE global_config SET paused=$1, updated_at=now() WHERE id = 1`, paused)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
