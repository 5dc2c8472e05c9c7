package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// mergeFieldsScript patches a JSON document in place so a partial update
// never clobbers fields written by someone else between our read and write.
var mergeFieldsScript = redis.NewScript(`
local key = KEYS[1]
local patch = cjson.decode(ARGV[1])

local doc = {}
local current = redis.call('GET', key)
if current then
	doc = cjson.decode(current)
end

for k, v in pairs(patch) do
	doc[k] = v
end

redis.call('SET', key, cjson.encode(doc))
return 1
`)

const scanBatchSize = 200

// RedisStore keeps each document as a JSON string at its path and each
// appended sequence as a list, so RPUSH gives collision-free insertion order.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, path string, out any) (bool, error) {
	raw, err := r.client.Get(ctx, path).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

func (r *RedisStore) Set(ctx context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return r.client.Set(ctx, path, raw, 0).Err()
}

func (r *RedisStore) Update(ctx context.Context, path string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode patch for %s: %w", path, err)
	}
	return mergeFieldsScript.Run(ctx, r.client, []string{path}, string(patch)).Err()
}

func (r *RedisStore) PushAppend(ctx context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return r.client.RPush(ctx, path, raw).Err()
}

func (r *RedisStore) Children(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	keys, err := r.childPaths(ctx, path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	// MGET returns nil for keys that are not plain strings, which skips
	// any appended sequences living under the same prefix.
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	prefix := path + "/"
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		out[strings.TrimPrefix(keys[i], prefix)] = json.RawMessage(s)
	}
	return out, nil
}

func (r *RedisStore) Appended(ctx context.Context, path string) ([]json.RawMessage, error) {
	vals, err := r.client.LRange(ctx, path, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(vals))
	for _, v := range vals {
		out = append(out, json.RawMessage(v))
	}
	return out, nil
}

func (r *RedisStore) AppendKeys(ctx context.Context, path string) ([]string, error) {
	keys, err := r.childPaths(ctx, path)
	if err != nil {
		return nil, err
	}
	prefix := path + "/"
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, prefix))
	}
	return out, nil
}

func (r *RedisStore) childPaths(ctx context.Context, path string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, path+"/*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
