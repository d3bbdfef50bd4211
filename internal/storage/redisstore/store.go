// Package redisstore stores whosfree documents in Redis and announces changes
// over pub/sub.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/whosfree/internal/catchphrase"
	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/storage"
)

const opTimeout = 5 * time.Second

// Store keeps every document of one tenant under whosfree:{tenant}:*.
// It is safe for concurrent use.
type Store struct {
	rdb    *redis.Client
	addr   string
	tenant string
}

// IsURL reports whether value selects the redis backend.
func IsURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}

// NewFromURL parses a redis:// URL. password, when set, overrides any
// password in the URL.
func NewFromURL(rawURL, password, tenant string) (*Store, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	return New(opts, tenant), nil
}

// New creates a store using the given connection options.
func New(opts *redis.Options, tenant string) *Store {
	if tenant == "" {
		tenant = constants.DefaultTenant
	}
	return &Store{
		rdb:    redis.NewClient(opts),
		addr:   opts.Addr,
		tenant: tenant,
	}
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func (s *Store) Init() error {
	if err := s.Load(); err != nil {
		return err
	}

	ctx, cancel := opContext()
	defer cancel()

	n, err := s.rdb.Exists(ctx, SettingsKey(s.tenant)).Result()
	if err != nil {
		return fmt.Errorf("failed to check settings: %w", err)
	}
	if n == 0 {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() error {
	ctx, cancel := opContext()
	defer cancel()

	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

// publish announces a change. Failures are logged; the write already
// succeeded.
func (s *Store) publish(ctx context.Context, document string) {
	payload, err := json.Marshal(storage.Update{Tenant: s.tenant, Document: document, At: time.Now().UTC()})
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, UpdatesChannel(s.tenant), payload).Err(); err != nil {
		logger.Warn("Failed to publish update", "document", document, "error", err)
	}
}

func (s *Store) GetSettings() (models.Settings, error) {
	ctx, cancel := opContext()
	defer cancel()

	data, err := s.rdb.HGetAll(ctx, SettingsKey(s.tenant)).Result()
	if err != nil {
		return models.Settings{}, err
	}
	if len(data) == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	settings, err := models.MapToSettings(data)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	ctx, cancel := opContext()
	defer cancel()

	values := make(map[string]interface{})
	for k, v := range models.SettingsToMap(settings) {
		values[k] = v
	}
	if err := s.rdb.HSet(ctx, SettingsKey(s.tenant), values).Err(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.publish(ctx, constants.DocSettings)
	return nil
}

func (s *Store) getDocument(name string, v interface{}) error {
	ctx, cancel := opContext()
	defer cancel()

	body, err := s.rdb.Get(ctx, DocumentKey(s.tenant, name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) saveDocument(name string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}

	ctx, cancel := opContext()
	defer cancel()

	if err := s.rdb.Set(ctx, DocumentKey(s.tenant, name), body, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	s.publish(ctx, name)
	return nil
}

func (s *Store) GetRoster() (models.Roster, error) {
	roster := models.Roster{}
	if err := s.getDocument(constants.DocRoster, &roster); err != nil {
		return nil, err
	}
	return roster, nil
}

func (s *Store) SaveRoster(roster models.Roster) error {
	return s.saveDocument(constants.DocRoster, roster)
}

func (s *Store) GetSnapshot() (models.Snapshot, error) {
	snapshot := models.Snapshot{}
	if err := s.getDocument(constants.DocTimetable, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *Store) SaveSnapshot(snapshot models.Snapshot) error {
	return s.saveDocument(constants.DocTimetable, snapshot)
}

func (s *Store) GetCatchphrases() ([]string, error) {
	ctx, cancel := opContext()
	defer cancel()

	keys, err := s.rdb.LRange(ctx, CatchphraseOrderKey(s.tenant), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []string{}, nil
	}

	values, err := s.rdb.HMGet(ctx, CatchphrasesKey(s.tenant), keys...).Result()
	if err != nil {
		return nil, err
	}

	phrases := make([]string, 0, len(values))
	for _, v := range values {
		if p, ok := v.(string); ok {
			phrases = append(phrases, p)
		}
	}
	return phrases, nil
}

// AddCatchphrase uses HSETNX on the lower-cased phrase, so concurrent adds
// of the same phrase from different processes store it once.
func (s *Store) AddCatchphrase(phrase string) (bool, error) {
	p, err := catchphrase.Normalize(phrase)
	if err != nil {
		return false, err
	}

	ctx, cancel := opContext()
	defer cancel()

	key := catchphrase.Key(p)
	added, err := s.rdb.HSetNX(ctx, CatchphrasesKey(s.tenant), key, p).Result()
	if err != nil {
		return false, err
	}
	if !added {
		return false, nil
	}

	if err := s.rdb.RPush(ctx, CatchphraseOrderKey(s.tenant), key).Err(); err != nil {
		return true, fmt.Errorf("failed to record phrase order: %w", err)
	}
	s.publish(ctx, constants.DocCatchphrases)
	return true, nil
}

func (s *Store) GetConfigPath() string {
	return "redis://" + s.addr
}

func (s *Store) GetTenant() string {
	return s.tenant
}

// Watch subscribes to this tenant's update channel.
// Updates are delivered on a buffered channel; a slow reader may miss
// messages, which is acceptable because every update triggers a full reload.
func (s *Store) Watch(ctx context.Context) (*storage.Subscription, error) {
	pubsub := s.rdb.Subscribe(ctx, UpdatesChannel(s.tenant))
	// Wait for the subscription to be confirmed before returning.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	updates := make(chan storage.Update, constants.UpdateBufferSize)
	errs := make(chan error, constants.UpdateBufferSize)
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(updates)
		defer close(errs)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var u storage.Update
				if err := json.Unmarshal([]byte(msg.Payload), &u); err != nil {
					select {
					case errs <- fmt.Errorf("failed to decode update: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case updates <- u:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return storage.NewSubscription(updates, errs, cancel), nil
}

var (
	_ storage.Provider = (*Store)(nil)
	_ storage.Watcher  = (*Store)(nil)
)
