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
	"errors"

	"github.com/tomoncle/credstore/types"
	"github.com/uptrace/bun"
)

var (
	// ErrNoRows is returned by FindOne when the filter matches nothing.
	ErrNoRows = errors.New("repository: no rows in result set")
	// ErrMultipleRows is returned by FindOne when the filter matches more
	// than one row.
	ErrMultipleRows = errors.New("repository: multiple rows in result set")
)

// CrudRepository defines the queries available for an entity type. Every
// method takes the bun.IDB to run on, so the same call works against the
// database handle or inside a transaction.
type CrudRepository[T any] interface {
	// FindOne returns the single entity matching filter.
	FindOne(ctx context.Context, idb bun.IDB, filter *types.QueryFilter) (*T, error)

	// Create inserts the entities and fills in store-assigned columns.
	Create(ctx context.Context, idb bun.IDB, entity ...*T) error

	// UpdateColumns writes the named columns of entity, located by its
	// primary key. No columns means every column.
	UpdateColumns(ctx context.Context, idb bun.IDB, entity *T, columns ...string) error
}

// TransactionRepository runs work inside a transaction.
type TransactionRepository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error
}

// Repository combines queries and transactions.
type Repository[T any] interface {
	CrudRepository[T]
	TransactionRepository
}
