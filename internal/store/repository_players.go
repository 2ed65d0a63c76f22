package store

import (
	"context"
	"encoding/json"
	"math/big"
)

// Player rows are stored as a schema-versioned jsonb document so that
// old record shapes remain readable. Reads decode any historical
// variant; writes always produce the current one.
const playerSchemaVer = 2

type playerDataV2 struct {
	SelectedFaction      int32  `json:"selected_faction"`
	TimeMultiplierAnchor int64  `json:"time_multiplier_anchor"`
	LastEpochBalance     string `json:"last_epoch_balance"`
}

func (q *Queries) GetPlayer(ctx context.Context, address string) (*Player, error) {
	row := q.db.QueryRow(ctx, `SELECT schema_ver, data FROM players WHERE address = $1`, address)
	var ver int32
	var raw []byte
	if err := row.Scan(&ver, &raw); err != nil {
		return nil, mapNotFound(err)
	}
	p, _, err := decodePlayerData(address, ver, raw)
	return p, err
}

func (q *Queries) UpsertPlayer(ctx context.Context, p *Player) error {
	raw, err := json.Marshal(playerDataV2{
		SelectedFaction:      p.SelectedFaction,
		TimeMultiplierAnchor: p.TimeMultiplierAnchor,
		LastEpochBalance:     bigString(p.LastEpochBalance),
	})
	if err != nil {
		return err
	}
	_, err = q.db.Exec(ctx, `INSERT INTO players (address, schema_ver, data) VALUES ($1,$2,$3)
		ON CONFLICT (address) DO UPDATE SET schema_ver=$2, data=$3, updated_at=now()`,
		p.Address, playerSchemaVer, raw)
	return err
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
