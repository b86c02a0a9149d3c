/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/uptrace/bun"
)

var supportedTypes = []string{"mysql", "postgres", "sqlite"}

// BaseDatabaseFactory creates and owns a configured database manager and
// provides helpers for initialization, health checks, and statistics.
type BaseDatabaseFactory struct {
	manager AbstractDatabaseManager
	logger  Logger
}

// NewDatabaseFactory returns a new database factory using the package logger.
func NewDatabaseFactory() *BaseDatabaseFactory {
	return &BaseDatabaseFactory{
		logger: GetLogger(),
	}
}

// Open builds a factory from cfg, connects, and runs the schema lifecycle
// selected by cfg.DataMigrateConfig. The caller owns the returned factory
// and must Close it.
func Open(ctx context.Context, cfg *Config) (*BaseDatabaseFactory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	f := NewDatabaseFactory()
	if _, err := f.CreateFromConfig(&cfg.ConnectionConfig); err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := f.InitializeDatabase(ctx, cfg.DataMigrateConfig); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return f, nil
}

// CreateFromConfig constructs a database manager from the given connection
// configuration, applying environment overrides and setting the factory logger.
func (f *BaseDatabaseFactory) CreateFromConfig(cfg *ConnectionConfig) (AbstractDatabaseManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}

	f.overrideFromEnv(cfg)
	if cfg.SingleSession {
		cfg.PinSingleSession()
	}

	if _, ok := connectors[cfg.Type]; !ok {
		return nil, fmt.Errorf("unsupported database type: %s, supported types: %v", cfg.Type, supportedTypes)
	}

	manager := NewDatabaseManager(cfg)
	manager.SetLogger(f.logger)

	f.manager = manager
	return manager, nil
}

// envOverrides lists the environment variables that take precedence over
// the configuration file. Unparsable numbers are ignored.
var envOverrides = []struct {
	key   string
	apply func(cfg *ConnectionConfig, v string)
}{
	{"DB_TYPE", func(cfg *ConnectionConfig, v string) { cfg.Type = v }},
	{"DB_DRIVER", func(cfg *ConnectionConfig, v string) { cfg.Driver = v }},
	{"DB_HOST", func(cfg *ConnectionConfig, v string) { cfg.Host = v }},
	{"DB_PORT", func(cfg *ConnectionConfig, v string) {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}},
	{"DB_USERNAME", func(cfg *ConnectionConfig, v string) { cfg.Username = v }},
	{"DB_PASSWORD", func(cfg *ConnectionConfig, v string) { cfg.Password = v }},
	{"DB_NAME", func(cfg *ConnectionConfig, v string) { cfg.DBName = v }},
	{"DB_SSLMODE", func(cfg *ConnectionConfig, v string) { cfg.SSLMode = v }},
	{"DB_CONN_MAX_LIFETIME", func(cfg *ConnectionConfig, v string) {
		if sec, err := strconv.Atoi(v); err == nil {
			cfg.ConnMaxLifetime = time.Duration(sec) * time.Second
		}
	}},
	{"DB_ENABLE_QUERY_LOG", func(cfg *ConnectionConfig, v string) { cfg.EnableQueryLog = v == "true" }},
}

func (f *BaseDatabaseFactory) overrideFromEnv(cfg *ConnectionConfig) {
	for _, o := range envOverrides {
		if v := os.Getenv(o.key); v != "" {
			o.apply(cfg, v)
		}
	}
}

// InitializeDatabase connects to the database and applies the schema
// lifecycle: a reset (drop and recreate) wins over plain migrations.
func (f *BaseDatabaseFactory) InitializeDatabase(ctx context.Context, mc DataMigrateConfig) error {
	if f.manager == nil {
		return fmt.Errorf("database manager not created")
	}

	if err := f.manager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if v := os.Getenv("DB_RESET_ON_STARTUP"); v != "" {
		mc.ResetOnStartup = v == "true"
	}

	switch {
	case mc.ResetOnStartup:
		if err := f.manager.ResetSchema(ctx); err != nil {
			return fmt.Errorf("failed to reset database schema: %w", err)
		}
	case mc.EnableMigrateOnStartup:
		if err := f.manager.RunMigrations(ctx); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}
	f.logger.Info("Database initialization completed!")
	return nil
}

// GetManager returns the underlying database manager.
func (f *BaseDatabaseFactory) GetManager() AbstractDatabaseManager {
	return f.manager
}

// GetDB returns the Bun database instance, or nil if not initialized.
func (f *BaseDatabaseFactory) GetDB() *bun.DB {
	if f.manager == nil {
		return nil
	}
	return f.manager.GetDB()
}

// SetLogger sets the logger on the factory and the underlying manager.
func (f *BaseDatabaseFactory) SetLogger(logger Logger) {
	f.logger = logger
	if f.manager != nil {
		f.manager.SetLogger(logger)
	}
}

// Close closes the database connection managed by the factory.
func (f *BaseDatabaseFactory) Close() error {
	if f.manager == nil {
		return nil
	}
	return f.manager.Disconnect()
}

// GetHealthStatus returns the current database health status from the manager.
func (f *BaseDatabaseFactory) GetHealthStatus(ctx context.Context) *HealthStatus {
	if f.manager == nil {
		return &HealthStatus{
			LastError:     "Database manager not initialized",
			LastCheckTime: time.Now(),
		}
	}
	return f.manager.HealthCheck(ctx)
}

// GetStats returns database connection statistics from the manager.
func (f *BaseDatabaseFactory) GetStats() *DBStats {
	if f.manager == nil {
		return &DBStats{}
	}
	return f.manager.GetStats()
}
