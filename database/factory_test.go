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
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type widget struct {
	bun.BaseModel `bun:"table:widgets,alias:w"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull"`
}

func init() {
	RegisteredModel(NewModelAdapter((*widget)(nil), 50))
}

func sqliteConfig() *Config {
	cfg := DefaultConfig()
	cfg.ConnectionConfig.Type = "sqlite"
	cfg.ConnectionConfig.InMemory = true
	cfg.ConnectionConfig.DBName = uuid.NewString()
	cfg.ConnectionConfig.PinSingleSession()
	return cfg
}

func TestFactory_OverrideFromEnv(t *testing.T) {
	t.Setenv("DB_TYPE", "mysql")
	t.Setenv("DB_HOST", "mysql.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_CONN_MAX_LIFETIME", "60")
	t.Setenv("DB_ENABLE_QUERY_LOG", "true")

	cfg := DefaultConnectionConfig()
	cfg.Type = "postgres"
	f := NewDatabaseFactory()
	manager, err := f.CreateFromConfig(cfg)
	require.NoError(t, err)
	assert.NotNil(t, manager)

	assert.Equal(t, "mysql", cfg.Type)
	assert.Equal(t, "mysql.internal", cfg.Host)
	assert.Equal(t, 3307, cfg.Port)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, time.Minute, cfg.ConnMaxLifetime)
	assert.True(t, cfg.EnableQueryLog)
}

func TestFactory_SingleSessionWinsOverEnv(t *testing.T) {
	t.Setenv("DB_CONN_MAX_LIFETIME", "60")

	cfg := DefaultConnectionConfig()
	cfg.Type = "sqlite"
	cfg.SingleSession = true
	_, err := NewDatabaseFactory().CreateFromConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.MaxOpenConns)
	assert.Equal(t, 1, cfg.MaxIdleConns)
	assert.Zero(t, cfg.ConnMaxLifetime)
	assert.Zero(t, cfg.ConnMaxIdleTime)
}

func TestFactory_UnsupportedType(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.Type = "oracle"
	_, err := NewDatabaseFactory().CreateFromConfig(cfg)
	assert.ErrorContains(t, err, "unsupported database type")

	_, err = NewDatabaseFactory().CreateFromConfig(nil)
	assert.Error(t, err)

	_, err = Open(context.Background(), nil)
	assert.Error(t, err)
}

func TestFactory_InitializeWithoutManager(t *testing.T) {
	err := NewDatabaseFactory().InitializeDatabase(context.Background(), DataMigrateConfig{})
	assert.Error(t, err)
	assert.Nil(t, NewDatabaseFactory().GetDB())
	assert.False(t, NewDatabaseFactory().GetHealthStatus(context.Background()).Healthy)
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	f, err := Open(ctx, sqliteConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	status := f.GetHealthStatus(ctx)
	assert.True(t, status.Healthy)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, f.GetStats().MaxOpenConns)

	applied, err := NewMigrationManager(f.GetDB(), GetLogger()).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "001", applied[0].Version)

	require.NoError(t, f.Close())
	assert.Nil(t, f.GetDB())
	assert.NoError(t, f.Close())
}
