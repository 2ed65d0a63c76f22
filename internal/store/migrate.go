package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
)

// Historical player record variants. Each converts one way into the
// current shape; conversion happens on read, persistence on demand via
// MigratePlayer.
//
// v0: had total_deposited instead of last_epoch_balance, and the time
// multiplier keyed off deposit_timestamp.
// v1: renamed to last_epoch_balance but still carried deposit_timestamp.
// v2: current — time_multiplier_anchor and last_epoch_balance.

type playerDataV0 struct {
	SelectedFaction  int32  `json:"selected_faction"`
	TotalDeposited   string `json:"total_deposited"`
	DepositTimestamp int64  `json:"deposit_timestamp"`
}

type playerDataV1 struct {
	SelectedFaction  int32  `json:"selected_faction"`
	DepositTimestamp int64  `json:"deposit_timestamp"`
	LastEpochBalance string `json:"last_epoch_balance"`
}

// decodePlayerData decodes any known variant into the current Player
// shape. The second return reports whether the stored row is an old
// variant that MigratePlayer would rewrite.
func decodePlayerData(address string, ver int32, raw []byte) (*Player, bool, error) {
	switch ver {
	case 0:
		var d playerDataV0
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, false, err
		}
		return &Player{
			Address:              address,
			SelectedFaction:      d.SelectedFaction,
			TimeMultiplierAnchor: d.DepositTimestamp,
			LastEpochBalance:     parseBig(d.TotalDeposited),
		}, true, nil
	case 1:
		var d playerDataV1
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, false, err
		}
		return &Player{
			Address:              address,
			SelectedFaction:      d.SelectedFaction,
			TimeMultiplierAnchor: d.DepositTimestamp,
			LastEpochBalance:     parseBig(d.LastEpochBalance),
		}, true, nil
	case 2:
		var d playerDataV2
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, false, err
		}
		return &Player{
			Address:              address,
			SelectedFaction:      d.SelectedFaction,
			TimeMultiplierAnchor: d.TimeMultiplierAnchor,
			LastEpochBalance:     parseBig(d.LastEpochBalance),
		}, false, nil
	default:
		return nil, false, fmt.Errorf("unknown player schema_ver %d", ver)
	}
}

// MigratePlayer rewrites an old-variant player row in the current
// shape. Returns true when a conversion was performed, false when the
// row is absent or already current.
func (q *Queries) MigratePlayer(ctx context.Context, address string) (bool, error) {
	row := q.db.QueryRow(ctx, `SELECT schema_ver, data FROM players WHERE address = $1 FOR UPDATE`, address)
	var ver int32
	var raw []byte
	if err := row.Scan(&ver, &raw); err != nil {
		if mapNotFound(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	p, old, err := decodePlayerData(address, ver, raw)
	if err != nil {
		return false, err
	}
	if !old {
		return false, nil
	}
	if err := q.UpsertPlayer(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}

func parseBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return big.NewInt(0)
	}
	return v
}
