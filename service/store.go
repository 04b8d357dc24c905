package service

import (
	"context"
	"fmt"
	"strings"

	"quill/app/mailer"
	"quill/app/repositories"
	"quill/app/repositories/mongostore"
	"quill/config"
	"quill/logging"

	"github.com/dgraph-io/badger/v4"
)

// badgerLogger routes Badger's internal logging through the app logger.
// Badger reports routine compaction at info level, so that goes to debug.
type badgerLogger struct {
	log logging.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.log.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.log.Warn(context.Background(), strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.log.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.log.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func openBadger(path string, log logging.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{log: log.With("component", "badger")})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return db, nil
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg config.Store, log logging.Logger) (*repositories.Store, func() error, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		db, err := openBadger(cfg.BadgerPath, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info(ctx, "using badger store", "path", cfg.BadgerPath)
		return repositories.NewBadgerStore(db), db.Close, nil

	case config.DriverMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		store, err := mongostore.NewStore(ctx, client.Database(cfg.MongoDatabase))
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		log.Info(ctx, "using mongo store", "database", cfg.MongoDatabase)
		return store, func() error { return client.Disconnect(context.Background()) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// newMailer picks SendGrid when an API key is configured and falls back to
// logging the messages.
func newMailer(cfg config.Mail, log logging.Logger) mailer.Mailer {
	if cfg.SendGridAPIKey == "" {
		return mailer.NewLogMailer(log.With("component", "mailer"))
	}
	return mailer.NewSendGridMailer(cfg.SendGridAPIKey, cfg.SendGridHost, cfg.From, cfg.FromName)
}
