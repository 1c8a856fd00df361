package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when a key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Service is the snapshot cache behind the candle series store: serialized
// OhlcvTimeSeries documents keyed per symbol, so a restart can skip the full
// klines backfill. Values are stored as bytes; Get fills dest from them (a
// *string receives the bytes verbatim, anything else is unmarshaled as JSON).
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Close() error
}

// encode normalizes a cached value to its stored byte form. Strings pass
// through untouched so snapshot JSON is not double-encoded.
func encode(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case *string:
		return []byte(*v), nil
	default:
		return json.Marshal(v)
	}
}

// decode fills dest from stored bytes, mirroring encode.
func decode(data []byte, dest interface{}) error {
	switch d := dest.(type) {
	case *[]byte:
		*d = append([]byte(nil), data...)
		return nil
	case *string:
		*d = string(data)
		return nil
	default:
		return json.Unmarshal(data, dest)
	}
}
