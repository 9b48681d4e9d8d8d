package resultdesk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gorm.io/datatypes"

	"github.com/gizaresult/resultdesk/internal/models"
)

// ParseResults reads a JSON array of result objects. Each object needs a
// non-empty seatNumber; every other key becomes result data.
func ParseResults(r io.Reader) ([]*models.Result, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}

	results := make([]*models.Result, 0, len(raw))
	for i, obj := range raw {
		seat := seatNumberOf(obj["seatNumber"])
		if seat == "" {
			return nil, fmt.Errorf("result #%d has no seatNumber", i)
		}
		data := make(datatypes.JSONMap, len(obj))
		for k, v := range obj {
			if k != "seatNumber" {
				data[k] = v
			}
		}
		results = append(results, &models.Result{SeatNumber: seat, Data: data})
	}
	return results, nil
}

// seatNumberOf accepts seat numbers written as strings or numbers.
func seatNumberOf(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

// LoadResults parses r and stores every result. It returns how many were stored.
func LoadResults(ctx context.Context, repo models.Repository, r io.Reader) (int, error) {
	results, err := ParseResults(r)
	if err != nil {
		return 0, err
	}
	if err := repo.AddResults(ctx, results); err != nil {
		return 0, err
	}
	return len(results), nil
}
