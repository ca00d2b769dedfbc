// Package orm is a thin fluent layer over gorm used by the repositories.
// It carries the injected database handle (no package-level connection) and
// adds pagination plus cache-through reads.
package orm

import (
	"time"

	"gorm.io/gorm"
)

// Cacher is the read-through cache used by Query.Cache. Satisfied by
// pkg/cache.Store; a nil Cacher disables caching.
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type Query struct {
	db    *gorm.DB
	cache Cacher
}

// New wraps a gorm handle. cache may be nil.
func New(db *gorm.DB, cache Cacher) *Query {
	return &Query{db: db, cache: cache}
}

func (q *Query) fork(db *gorm.DB) *Query { return &Query{db: db, cache: q.cache} }

func (q *Query) Model(v interface{}) *Query { return q.fork(q.db.Model(v)) }

func (q *Query) Where(cond string, args ...interface{}) *Query {
	return q.fork(q.db.Where(cond, args...))
}

func (q *Query) Preload(assoc string, args ...interface{}) *Query {
	return q.fork(q.db.Preload(assoc, args...))
}

func (q *Query) Order(value string) *Query { return q.fork(q.db.Order(value)) }

func (q *Query) Limit(n int) *Query { return q.fork(q.db.Limit(n)) }

// First fetches a single row; returns gorm.ErrRecordNotFound when absent.
func (q *Query) First(dest interface{}) error { return q.db.First(dest).Error }

// Get fetches all matching rows.
func (q *Query) Get(dest interface{}) error { return q.db.Find(dest).Error }

func (q *Query) Count(n *int64) error { return q.db.Count(n).Error }

func (q *Query) Create(v interface{}) error { return q.db.Create(v).Error }

func (q *Query) Save(v interface{}) error { return q.db.Save(v).Error }

func (q *Query) Updates(v interface{}) error { return q.db.Updates(v).Error }

func (q *Query) Delete(v interface{}, conds ...interface{}) error {
	return q.db.Delete(v, conds...).Error
}

// GetWithPagination fetches one page of results plus total-count metadata.
// page and limit are clamped to sane values.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := q.db.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// Cache reads dest from the cache under key, falling back to the query and
// populating the cache on miss.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if q.cache != nil && q.cache.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	if q.cache != nil {
		_ = q.cache.Set(key, dest, ttl)
	}
	return nil
}

// Transaction runs fn inside a database transaction. The Query passed to fn
// shares the parent's cache and is bound to the transaction handle; any error
// (or panic) rolls the whole transaction back.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Query{db: tx, cache: q.cache})
	})
}

// Gorm exposes the underlying handle for operations the fluent layer does
// not cover (migrations, raw SQL in tests).
func (q *Query) Gorm() *gorm.DB { return q.db }
