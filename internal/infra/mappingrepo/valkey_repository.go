package mappingrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-beats/internal/domain/mapping"
)

// ValkeyRepository persists mappings in a Valkey hash keyed by "condition|mood".
// Re-inserting an existing pair keeps the first genre, matching the first-match lookup of the other stores.
type ValkeyRepository struct {
	client valkey.Client
	prefix string
}

// NewValkeyRepository constructs a new repository backed by Valkey.
func NewValkeyRepository(client valkey.Client, prefix string) *ValkeyRepository {
	if prefix == "" {
		prefix = "weatherbeats"
	}
	return &ValkeyRepository{client: client, prefix: prefix}
}

func (r *ValkeyRepository) Find(ctx context.Context, condition, mood string) (mapping.Mapping, bool, error) {
	cmd := r.client.B().Hget().Key(r.hashKey()).Field(fieldFor(condition, mood)).Build()
	payload, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return mapping.Mapping{}, false, nil
		}
		return mapping.Mapping{}, false, err
	}
	var m mapping.Mapping
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return mapping.Mapping{}, false, err
	}
	return m, true, nil
}

func (r *ValkeyRepository) Insert(ctx context.Context, m mapping.Mapping) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	cmd := r.client.B().Hsetnx().Key(r.hashKey()).Field(fieldFor(m.WeatherCondition, m.Mood)).Value(string(payload)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *ValkeyRepository) List(ctx context.Context) ([]mapping.Mapping, error) {
	entries, err := r.client.Do(ctx, r.client.B().Hgetall().Key(r.hashKey()).Build()).AsStrMap()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	fields := make([]string, 0, len(entries))
	for field := range entries {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	out := make([]mapping.Mapping, 0, len(fields))
	for _, field := range fields {
		var m mapping.Mapping
		if err := json.Unmarshal([]byte(entries[field]), &m); err != nil {
			return nil, fmt.Errorf("decode mapping %q: %w", field, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *ValkeyRepository) Count(ctx context.Context) (int64, error) {
	return r.client.Do(ctx, r.client.B().Hlen().Key(r.hashKey()).Build()).AsInt64()
}

func (r *ValkeyRepository) hashKey() string {
	return fmt.Sprintf("%s:mappings", r.prefix)
}

func fieldFor(condition, mood string) string {
	return strings.ReplaceAll(condition, "|", "\\|") + "|" + strings.ReplaceAll(mood, "|", "\\|")
}

var _ mapping.Store = (*ValkeyRepository)(nil)
