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

	"github.com/tomoncle/credstore/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
)

// findOneLimit is enough rows to tell "exactly one" from "more than one".
const findOneLimit = 2

type baseRepositoryImpl[T any] struct {
	db *bun.DB
}

// NewRepository returns a generic repository backed by the provided Bun DB.
func NewRepository[T any](db *bun.DB) Repository[T] {
	return &baseRepositoryImpl[T]{db: db}
}

func (r *baseRepositoryImpl[T]) idb(idb bun.IDB) bun.IDB {
	if idb == nil {
		return r.db
	}
	return idb
}

func (r *baseRepositoryImpl[T]) FindOne(ctx context.Context, idb bun.IDB, filter *types.QueryFilter) (*T, error) {
	var entities []*T
	query := r.idb(idb).NewSelect().Model(&entities).Limit(findOneLimit)
	if filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	switch len(entities) {
	case 0:
		return nil, ErrNoRows
	case 1:
		return entities[0], nil
	default:
		return nil, ErrMultipleRows
	}
}

func (r *baseRepositoryImpl[T]) Create(ctx context.Context, idb bun.IDB, entity ...*T) error {
	idb = r.idb(idb)
	returning := idb.Dialect().Features().Has(feature.InsertReturning)
	for _, e := range entity {
		query := idb.NewInsert().Model(e)
		if returning {
			query = query.Returning("*")
		}
		if _, err := query.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *baseRepositoryImpl[T]) UpdateColumns(ctx context.Context, idb bun.IDB, entity *T, columns ...string) error {
	query := r.idb(idb).NewUpdate().Model(entity).WherePK()
	if len(columns) > 0 {
		query = query.Column(columns...)
	}
	_, err := query.Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return r.db.RunInTx(ctx, nil, fn)
}
