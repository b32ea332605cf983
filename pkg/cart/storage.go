package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("cart not found")

type Storage interface {
	Get(ctx context.Context, id string) (Cart, error)
	Put(ctx context.Context, c Cart) error
	Delete(ctx context.Context, id string) error
}

// DiskStorage keeps one JSON file per cart, enough for a single node setup.
type DiskStorage struct {
	Path string
}

func NewDiskStorage(path string) *DiskStorage {
	return &DiskStorage{Path: path}
}

func (s *DiskStorage) fileName(id string) string {
	return filepath.Join(s.Path, fmt.Sprintf("cart-%s.json", id))
}

func (s *DiskStorage) Get(_ context.Context, id string) (Cart, error) {
	file, err := os.Open(s.fileName(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Cart{}, ErrNotFound
		}
		return Cart{}, err
	}
	defer file.Close()
	var c Cart
	if err := json.NewDecoder(file).Decode(&c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *DiskStorage) Put(_ context.Context, c Cart) error {
	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return err
	}
	file, err := os.Create(s.fileName(c.Id))
	if err != nil {
		return err
	}
	defer file.Close()
	return json.NewEncoder(file).Encode(c)
}

func (s *DiskStorage) Delete(_ context.Context, id string) error {
	err := os.Remove(s.fileName(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// RedisStorage shares carts between storefront replicas.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStorage(addr, password string, db int, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func cartKey(id string) string {
	return "cart:" + id
}

func (s *RedisStorage) Get(ctx context.Context, id string) (Cart, error) {
	data, err := s.client.Get(ctx, cartKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Cart{}, ErrNotFound
		}
		return Cart{}, err
	}
	var c Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *RedisStorage) Put(ctx context.Context, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(c.Id), data, s.ttl).Err()
}

func (s *RedisStorage) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, cartKey(id)).Err()
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
