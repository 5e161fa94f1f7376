// Package portion serializes a food's list of serving-size options into the
// single blob column stored with its catalog row. The envelope is versioned
// so stored blobs written by a future schema fail loudly instead of being
// misread.
package portion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tnguyen/foodlog/internal/domain"
)

// ErrCodec indicates a blob that cannot be decoded: corrupt bytes, a
// missing envelope, or a version this build does not understand. Callers
// decide recovery; the codec never substitutes an empty list.
var ErrCodec = errors.New("invalid portion data")

const codecVersion = 1

type envelope struct {
	Version  int           `json:"v"`
	Portions []portionJSON `json:"portions"`
}

type portionJSON struct {
	Amount     float64 `json:"amount"`
	Unit       string  `json:"unit,omitempty"`
	Modifier   string  `json:"modifier,omitempty"`
	GramWeight float64 `json:"gramWeight"`
}

// Encode serializes the ordered portion list. Decode(Encode(p)) == p for
// any list, including an empty one.
func Encode(portions []domain.FoodPortion) ([]byte, error) {
	env := envelope{
		Version:  codecVersion,
		Portions: make([]portionJSON, 0, len(portions)),
	}
	for _, p := range portions {
		env.Portions = append(env.Portions, portionJSON{
			Amount:     p.Amount,
			Unit:       p.Unit,
			Modifier:   p.Modifier,
			GramWeight: p.GramWeight,
		})
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encoding portions: %w", err)
	}
	return data, nil
}

// Decode deserializes a blob produced by Encode.
func Decode(data []byte) ([]domain.FoodPortion, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty blob", ErrCodec)
	}

	var env envelope
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodec, err)
	}

	if env.Version != codecVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCodec, env.Version)
	}

	portions := make([]domain.FoodPortion, 0, len(env.Portions))
	for _, p := range env.Portions {
		portions = append(portions, domain.FoodPortion{
			Amount:     p.Amount,
			Unit:       p.Unit,
			Modifier:   p.Modifier,
			GramWeight: p.GramWeight,
		})
	}
	return portions, nil
}
