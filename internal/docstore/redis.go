package docstore

import (
	"context"
	"errors"
	"iter"
	"maps"
	"slices"

	"github.com/redis/go-redis/v9"
)

const maxWatchRetries = 5

// RedisStore keeps each collection in one hash keyed by document id.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore wraps client. Keys are namespaced as "<prefix>:<collection>".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Collection returns a handle scoped to name.
func (s *RedisStore) Collection(name string) Collection {
	key := name
	if s.prefix != "" {
		key = s.prefix + ":" + name
	}
	return &redisCollection{client: s.client, key: key}
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return unavailable("ping", s.client.Ping(ctx).Err())
}

type redisCollection struct {
	client redis.UniversalClient
	key    string
}

func (c *redisCollection) Insert(ctx context.Context, doc Document) error {
	id, ok := doc.ID()
	if !ok {
		return ErrInvalidDocument
	}
	raw, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	return unavailable("insert", c.client.HSet(ctx, c.key, id, raw).Err())
}

func (c *redisCollection) Find(ctx context.Context, q Query) iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		all, err := c.client.HGetAll(ctx, c.key).Result()
		if err != nil {
			yield(nil, unavailable("find", err))
			return
		}
		// Hashes are unordered; ids give a stable natural order.
		ids := slices.Sorted(maps.Keys(all))
		docs := make([]Document, 0, len(all))
		for _, id := range ids {
			doc, err := decodeDocument([]byte(all[id]))
			if err != nil {
				yield(nil, err)
				return
			}
			docs = append(docs, doc)
		}
		for _, doc := range applyQuery(docs, q) {
			if !yield(doc, nil) {
				return
			}
		}
	}
}

func (c *redisCollection) SetFields(ctx context.Context, id string, fields Document) error {
	if err := checkFields(fields); err != nil {
		return err
	}
	update := func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, c.key, id).Result()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		doc, err := decodeDocument([]byte(raw))
		if err != nil {
			return err
		}
		maps.Copy(doc, fields)
		encoded, err := encodeDocument(doc)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, c.key, id, encoded)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxWatchRetries; attempt++ {
		err := c.client.Watch(ctx, update, c.key)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrNotFound):
			return ErrNotFound
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			return unavailable("update", err)
		}
	}
	return unavailable("update", redis.TxFailedErr)
}

func (c *redisCollection) Delete(ctx context.Context, id string) error {
	removed, err := c.client.HDel(ctx, c.key, id).Result()
	if err != nil {
		return unavailable("delete", err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}
