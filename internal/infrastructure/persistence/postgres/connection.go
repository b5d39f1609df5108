package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/infrastructure/config"
)

// DialectorFunc cria o dialector GORM a partir da DSN
type DialectorFunc func(dsn string) gorm.Dialector

// Connector abre a conexão com o banco uma única vez, sob demanda.
// Chamadas concorrentes durante a abertura compartilham a mesma tentativa.
type Connector struct {
	cfg       *config.DatabaseConfig
	log       ports.Logger
	dialector DialectorFunc
	logLevel  logger.LogLevel

	group singleflight.Group
	mu    sync.RWMutex
	db    *gorm.DB
}

// ConnectorOption customiza o Connector
type ConnectorOption func(*Connector)

// WithDialector troca o driver (ex.: sqlite nos testes)
func WithDialector(fn DialectorFunc) ConnectorOption {
	return func(c *Connector) {
		c.dialector = fn
	}
}

// WithLogLevel define o nível de log do GORM
func WithLogLevel(level logger.LogLevel) ConnectorOption {
	return func(c *Connector) {
		c.logLevel = level
	}
}

// NewConnector cria um Connector para PostgreSQL
func NewConnector(cfg *config.DatabaseConfig, log ports.Logger, opts ...ConnectorOption) *Connector {
	c := &Connector{
		cfg:       cfg,
		log:       log,
		dialector: postgres.Open,
		logLevel:  logger.Warn,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DB retorna a conexão, abrindo-a na primeira chamada
func (c *Connector) DB(ctx context.Context) (*gorm.DB, error) {
	if db := c.current(); db != nil {
		return db, nil
	}

	v, err, _ := c.group.Do("connect", func() (interface{}, error) {
		if db := c.current(); db != nil {
			return db, nil
		}

		db, err := c.open(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.db = db
		c.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gorm.DB), nil
}

// Ping verifica se o banco responde
func (c *Connector) Ping(ctx context.Context) error {
	db, err := c.DB(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close fecha a conexão se ela tiver sido aberta
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	c.db = nil
	return sqlDB.Close()
}

func (c *Connector) current() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

func (c *Connector) open(ctx context.Context) (*gorm.DB, error) {
	// GORM config
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(c.logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt:    false,
		TranslateError: true,
	}

	// Conectar
	db, err := gorm.Open(c.dialector(c.cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configurar connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if c.cfg.MaxConns > 0 {
		sqlDB.SetMaxOpenConns(c.cfg.MaxConns)
	}
	if c.cfg.MinConns > 0 {
		sqlDB.SetMaxIdleConns(c.cfg.MinConns)
	}
	if c.cfg.MaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(c.cfg.MaxIdleTime) * time.Second)
	}

	// Ping para verificar conexão
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	c.log.Info("database connected successfully",
		"host", c.cfg.Host,
		"port", c.cfg.Port,
		"database", c.cfg.DBName,
	)

	return db, nil
}
