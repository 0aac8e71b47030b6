package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the hash holding all notes.
const DefaultRedisKey = "promisemux:notes"

// RedisStore keeps notes as JSON values in a single Redis hash keyed by ID.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	now    func() time.Time
}

// NewRedisStore creates a store on client. An empty key uses DefaultRedisKey.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key, now: time.Now}
}

func (s *RedisStore) Create(ctx context.Context, in Input) (Note, error) {
	n := newNote(in, s.now().UTC())
	if err := s.put(ctx, n); err != nil {
		return Note{}, err
	}
	return n, nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (Note, error) {
	raw, err := s.client.HGet(ctx, s.key, id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, fmt.Errorf("get note %s: %w", id, err)
	}
	return decode(raw)
}

// List returns notes ordered by creation time, oldest first.
func (s *RedisStore) List(ctx context.Context) ([]Note, error) {
	all, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	list := make([]Note, 0, len(all))
	for _, raw := range all {
		n, err := decode([]byte(raw))
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	sortNotes(list)
	return list, nil
}

// Update replaces title and body inside a WATCH transaction so a concurrent
// delete is not undone.
func (s *RedisStore) Update(ctx context.Context, id uuid.UUID, in Input) (Note, error) {
	var updated Note
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, s.key, id.String()).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		n, err := decode(raw)
		if err != nil {
			return err
		}
		n.Title, n.Body, n.UpdatedAt = in.Title, in.Body, s.now().UTC()

		data, err := json.Marshal(n)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, s.key, id.String(), data)
			return nil
		})
		if err != nil {
			return err
		}
		updated = n
		return nil
	}, s.key)

	switch {
	case errors.Is(err, ErrNotFound):
		return Note{}, ErrNotFound
	case err != nil:
		return Note{}, fmt.Errorf("update note %s: %w", id, err)
	}
	return updated, nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := s.client.HDel(ctx, s.key, id.String()).Result()
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) put(ctx context.Context, n Note) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, s.key, n.ID.String(), data).Err(); err != nil {
		return fmt.Errorf("save note %s: %w", n.ID, err)
	}
	return nil
}

func decode(raw []byte) (Note, error) {
	var n Note
	if err := json.Unmarshal(raw, &n); err != nil {
		return Note{}, fmt.Errorf("decode note: %w", err)
	}
	return n, nil
}
