package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/storage"
)

// ResyncDocument marks an update sent after the listener reconnected, when
// notifications may have been missed.
const ResyncDocument = "*"

type notification struct {
	Tenant   string `json:"tenant"`
	Document string `json:"document"`
}

func (s *Store) notify(tx *sql.Tx, document string) error {
	payload, err := json.Marshal(notification{Tenant: s.tenant, Document: document})
	if err != nil {
		return err
	}
	if _, err := tx.Exec("SELECT pg_notify($1, $2)", constants.PostgresNotifyTopic, string(payload)); err != nil {
		return fmt.Errorf("failed to publish update: %w", err)
	}
	return nil
}

// Watch listens for updates to this store's tenant using LISTEN/NOTIFY.
func (s *Store) Watch(ctx context.Context) (*storage.Subscription, error) {
	listener := pq.NewListener(s.connStr, constants.PostgresMinReconn, constants.PostgresMaxReconn,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Warn("Postgres listener event", "event", ev, "error", err)
			}
		})
	if err := listener.Listen(constants.PostgresNotifyTopic); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to listen for updates: %w", err)
	}

	updates := make(chan storage.Update, constants.UpdateBufferSize)
	errs := make(chan error, constants.UpdateBufferSize)
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(updates)
		defer close(errs)
		defer listener.Close()

		ping := time.NewTicker(90 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-subCtx.Done():
				return
			case <-ping.C:
				go func() {
					if err := listener.Ping(); err != nil {
						logger.Debug("Postgres listener ping failed", "error", err)
					}
				}()
			case n, ok := <-listener.Notify:
				if !ok {
					return
				}

				// A nil notification follows a reconnect.
				update := storage.Update{Tenant: s.tenant, Document: ResyncDocument, At: time.Now()}
				if n != nil {
					var msg notification
					if err := json.Unmarshal([]byte(n.Extra), &msg); err != nil {
						select {
						case errs <- fmt.Errorf("failed to decode update: %w", err):
						case <-subCtx.Done():
							return
						}
						continue
					}
					if msg.Tenant != s.tenant {
						continue
					}
					update.Document = msg.Document
				}

				select {
				case updates <- update:
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
