package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
)

// keyInputs is the canonical serialization shape for cache keys. Struct
// fields marshal in declaration order and map keys sort, so identical
// inputs always produce identical bytes.
type keyInputs struct {
	Build   *combat.Build   `json:"build"`
	Target  *combat.Target  `json:"target"`
	Tactics *combat.Tactics `json:"tactics"`
}

// Key derives a deterministic cache key from the evaluation inputs.
// A serialization failure is returned as an error; callers treat it as
// a miss and fall through to the uncached computation.
func Key(build *combat.Build, target *combat.Target, tactics *combat.Tactics) (string, error) {
	data, err := json.Marshal(keyInputs{
		Build:   build,
		Target:  target,
		Tactics: tactics,
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize cache key inputs: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
