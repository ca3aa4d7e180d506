package main

import (
	"log/slog"
	"strings"
	"sync"

	"convertly/internal/api"
	"convertly/internal/config"
	"convertly/internal/fallback"
	"convertly/internal/logging"
	"convertly/internal/notifications"
	"convertly/internal/session"
	"convertly/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	clientOnce sync.Once
	session    *session.Session
	client     *api.Client
	clientErr  error

	storeOnce sync.Once
	store     *store.Store
	storeErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureClient() (*api.Client, error) {
	c.clientOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.clientErr = err
			return
		}
		sess, err := session.Open(cfg)
		if err != nil {
			c.clientErr = err
			return
		}
		client, err := api.NewFromConfig(cfg, sess)
		if err != nil {
			c.clientErr = err
			return
		}
		c.session = sess
		c.client = client
	})
	return c.client, c.clientErr
}

func (c *commandContext) ensureSession() (*session.Session, error) {
	if _, err := c.ensureClient(); err != nil {
		return nil, err
	}
	return c.session, nil
}

// ensureStore opens the snapshot database. Commands that never touch admin
// entities skip this so a locked database does not block conversions.
func (c *commandContext) ensureStore() (*store.Store, error) {
	c.storeOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.storeErr = err
			return
		}
		c.store, c.storeErr = store.Open(cfg)
	})
	return c.store, c.storeErr
}

func (c *commandContext) ensureFallback() (*fallback.Service, error) {
	client, err := c.ensureClient()
	if err != nil {
		return nil, err
	}
	snapshots, err := c.ensureStore()
	if err != nil {
		return nil, err
	}
	return fallback.New(client, snapshots, c.logger()), nil
}

func (c *commandContext) notifier() notifications.Notifier {
	cfg, err := c.ensureConfig()
	if err != nil {
		return notifications.Noop{}
	}
	return notifications.NewFromConfig(cfg)
}

func (c *commandContext) logger() *slog.Logger {
	cfg, err := c.ensureConfig()
	if err != nil {
		return logging.NewNop()
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

func (c *commandContext) closeStore() {
	if c.store != nil {
		_ = c.store.Close()
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
