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
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tomoncle/credstore/database"
	"github.com/tomoncle/credstore/repository"
	"github.com/tomoncle/credstore/types"
	"github.com/tomoncle/credstore/utils"
	"github.com/uptrace/bun"
)

const loggerName = "CREDSTORE"

// SensitiveFields are masked in every record written by the repository
// logger.
var SensitiveFields = []string{
	types.FieldEmail.Name(),
	types.FieldHashedPassword.Name(),
	types.FieldSessionID.Name(),
	types.FieldResetToken.Name(),
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger replaces the default redacting logger.
func WithLogger(l *logrus.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// Repository is the credential store. All calls run one at a time on a
// single store session. The caller owns the Repository and must Close it.
type Repository struct {
	mu      sync.Mutex
	db      *bun.DB
	users   repository.Repository[User]
	factory *database.BaseDatabaseFactory
	logger  *logrus.Logger
	closed  bool
}

// Open connects using cfg, pins the connection pool to a single session
// and prepares the schema as cfg.DataMigrateConfig asks. A nil cfg opens
// an in-memory sqlite store named "credstore".
func Open(ctx context.Context, cfg *database.Config, opts ...Option) (*Repository, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	c.ConnectionConfig.SingleSession = true

	factory, err := database.Open(ctx, &c)
	if err != nil {
		return nil, err
	}
	r := New(factory.GetDB(), opts...)
	r.factory = factory
	return r, nil
}

// New wraps an already connected handle. The schema is not touched and
// the pool is pinned to a single session. Close closes db.
func New(db *bun.DB, opts ...Option) *Repository {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	r := &Repository{
		db:    db,
		users: repository.NewRepository[User](db),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = utils.NewLogger(loggerName, utils.WithRedaction(SensitiveFields...))
	}
	return r
}

// DefaultConfig is database.DefaultConfig on an in-memory sqlite store.
func DefaultConfig() *database.Config {
	cfg := database.DefaultConfig()
	cfg.ConnectionConfig.Type = "sqlite"
	cfg.ConnectionConfig.InMemory = true
	cfg.ConnectionConfig.DBName = "credstore"
	cfg.ConnectionConfig.PinSingleSession()
	return cfg
}

// Close releases the session. Calling it more than once is a no-op.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if r.factory != nil {
		return r.factory.Close()
	}
	return r.db.Close()
}

// Create stores a new user with no session id and no reset token and
// returns it with its assigned id.
func (r *Repository) Create(ctx context.Context, email, hashedPassword string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := &User{Email: email, HashedPassword: hashedPassword}
	err := r.users.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return r.users.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, r.storeFailure("create", err)
	}
	r.logger.WithField("id", user.ID).Debug("User created")
	return user, nil
}

// FindOneBy returns the only user matching every condition. It fails with
// ErrNotFound when nothing matches and ErrAmbiguousMatch when more than
// one record does.
func (r *Repository) FindOneBy(ctx context.Context, conditions ...types.Condition) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.findOneBy(ctx, r.db, "find", conditions)
}

func (r *Repository) findOneBy(ctx context.Context, idb bun.IDB, op string, conditions types.Conditions) (*User, error) {
	filter, err := conditions.QueryFilter()
	if err != nil {
		return nil, err
	}

	user, err := r.users.FindOne(ctx, idb, filter)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, repository.ErrNoRows):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, conditions)
	case errors.Is(err, repository.ErrMultipleRows):
		r.logger.WithFields(logrus.Fields{"op": op, "filter": conditions.String()}).
			Error("Filter matched more than one user")
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousMatch, conditions)
	default:
		return nil, r.storeFailure(op, err)
	}
}

// UpdateBy assigns attrs to the user with the given id. The target is
// resolved first, then every attribute is checked before any is applied,
// so a rejected call leaves the record untouched. Only email,
// hashed_password, session_id and reset_token may be assigned.
func (r *Repository) UpdateBy(ctx context.Context, id int64, attrs types.Attributes) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.users.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		user, err := r.findOneBy(ctx, tx, "update", types.Conditions{types.Where(types.FieldID, id)})
		if err != nil {
			return err
		}
		if err := attrs.Validate(); err != nil {
			return err
		}
		columns := applyAttributes(user, attrs)
		if err := r.users.UpdateColumns(ctx, tx, user, columns...); err != nil {
			return r.storeFailure("update", err)
		}
		return nil
	})
	switch {
	case err == nil:
		r.logger.WithFields(logrus.Fields{"id": id, "columns": len(attrs)}).Debug("User updated")
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAmbiguousMatch),
		errors.Is(err, ErrInvalidAttribute), errors.Is(err, ErrStoreFailure):
		return err
	default:
		return r.storeFailure("update", err)
	}
}

// applyAttributes writes validated attrs onto u and returns the columns
// that changed.
func applyAttributes(u *User, attrs types.Attributes) []string {
	columns := make([]string, 0, len(attrs))
	for _, f := range attrs.Fields() {
		switch f {
		case types.FieldEmail:
			u.Email = *attrs.StringValue(f)
		case types.FieldHashedPassword:
			u.HashedPassword = *attrs.StringValue(f)
		case types.FieldSessionID:
			u.SessionID = attrs.StringValue(f)
		case types.FieldResetToken:
			u.ResetToken = attrs.StringValue(f)
		default:
			continue
		}
		columns = append(columns, f.Column())
	}
	return columns
}

// Health pings the session.
func (r *Repository) Health(ctx context.Context) *database.HealthStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.factory != nil {
		return r.factory.GetHealthStatus(ctx)
	}

	start := time.Now()
	status := &database.HealthStatus{LastCheckTime: start}
	if err := r.db.PingContext(ctx); err != nil {
		status.LastError = err.Error()
	} else {
		status.Healthy = true
		status.Connected = true
	}
	status.ResponseTime = time.Since(start)

	stats := r.db.Stats()
	status.ActiveConns = stats.InUse
	status.IdleConns = stats.Idle
	status.MaxOpenConns = stats.MaxOpenConnections
	return status
}

func (r *Repository) storeFailure(op string, err error) error {
	serr := newStoreError(op, err)
	r.logger.WithFields(logrus.Fields{
		"op":    op,
		"kind":  serr.Kind.String(),
		"error": database.MaskLiterals(err.Error()),
	}).Error("Store operation failed")
	return serr
}
