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

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/credstore/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type account struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID    int64   `bun:"id,pk,autoincrement"`
	Name  string  `bun:"name,notnull"`
	Token *string `bun:"token"`
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	sqlDB, err := sql.Open(sqliteshim.ShimName, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.NewCreateTable().Model((*account)(nil)).Exec(context.Background())
	require.NoError(t, err)
	return db
}

func TestRepository_CreateAssignsIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[account](newTestDB(t))

	a, b := &account{Name: "a"}, &account{Name: "b"}
	require.NoError(t, repo.Create(ctx, nil, a, b))

	assert.NotZero(t, a.ID)
	assert.NotZero(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Nil(t, a.Token)
}

func TestRepository_FindOne(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[account](newTestDB(t))
	require.NoError(t, repo.Create(ctx, nil, &account{Name: "x"}, &account{Name: "y"}, &account{Name: "y"}))

	got, err := repo.FindOne(ctx, nil, types.NewQueryFilter("name = ?", "x"))
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name)

	_, err = repo.FindOne(ctx, nil, types.NewQueryFilter("name = ?", "z"))
	assert.ErrorIs(t, err, ErrNoRows)

	_, err = repo.FindOne(ctx, nil, types.NewQueryFilter("name = ?", "y"))
	assert.ErrorIs(t, err, ErrMultipleRows)

	got, err = repo.FindOne(ctx, nil, nil)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrMultipleRows)
}

func TestRepository_UpdateColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[account](newTestDB(t))
	a := &account{Name: "before"}
	require.NoError(t, repo.Create(ctx, nil, a))

	token := "t1"
	err := repo.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		found, err := repo.FindOne(ctx, tx, types.NewQueryFilter("id = ?", a.ID))
		if err != nil {
			return err
		}
		found.Name = "ignored"
		found.Token = &token
		return repo.UpdateColumns(ctx, tx, found, "token")
	})
	require.NoError(t, err)

	got, err := repo.FindOne(ctx, nil, types.NewQueryFilter("id = ?", a.ID))
	require.NoError(t, err)
	assert.Equal(t, "before", got.Name)
	require.NotNil(t, got.Token)
	assert.Equal(t, "t1", *got.Token)
}

func TestRepository_RunInTxRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[account](newTestDB(t))

	err := repo.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := repo.Create(ctx, tx, &account{Name: "gone"}); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.EqualError(t, err, "abort")

	_, err = repo.FindOne(ctx, nil, types.NewQueryFilter("name = ?", "gone"))
	assert.ErrorIs(t, err, ErrNoRows)
}
