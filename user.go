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

package credstore

import (
	"context"
	"fmt"

	"github.com/tomoncle/credstore/database"
	"github.com/tomoncle/credstore/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// User is a stored credential record. ID is assigned by the store on
// insert and never changes afterwards.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID             int64   `bun:"id,pk,autoincrement" json:"id"`
	Email          string  `bun:"email,type:varchar(250),notnull" json:"email"`
	HashedPassword string  `bun:"hashed_password,type:varchar(250),notnull" json:"-"`
	SessionID      *string `bun:"session_id,type:varchar(250)" json:"session_id,omitempty"`
	ResetToken     *string `bun:"reset_token,type:varchar(250)" json:"-"`
}

// lookupColumns are the columns credentials are usually resolved by.
var lookupColumns = []types.Field{types.FieldEmail, types.FieldSessionID, types.FieldResetToken}

func init() {
	database.RegisteredModel(database.NewModelAdapter((*User)(nil), 10))
	if err := database.RegisterMigration(database.MigrationItem{
		Version:     "002",
		Name:        "users_lookup_indexes",
		Description: "Index users by email, session id and reset token",
		Up:          createLookupIndexes,
	}); err != nil {
		panic(err)
	}
}

// createLookupIndexes adds non-unique indexes. Email is not unique:
// duplicates surface as ambiguous matches on lookup.
func createLookupIndexes(ctx context.Context, db bun.IDB) error {
	for _, f := range lookupColumns {
		q := db.NewCreateIndex().
			Model((*User)(nil)).
			Index("idx_users_" + f.Column()).
			Column(f.Column())
		if db.Dialect().Name() != dialect.MySQL {
			q = q.IfNotExists()
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", f.Column(), err)
		}
	}
	return nil
}
