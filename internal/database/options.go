package database

import (
	"sync"

	"github.com/RichardKnop/jsondb/internal/storage"
)

type Option func(*Database)

const DefaultMaxCachedStatements = 1000

// WithStatementCacheSize sets how many parsed statements are kept. Zero
// disables the cache.
func WithStatementCacheSize(maxStatements int) Option {
	return func(d *Database) {
		d.cacheSize = maxStatements
	}
}

func WithUpdateMode(mode storage.UpdateMode) Option {
	return func(d *Database) {
		d.updateMode = mode
	}
}

// WithSerializedAccess makes every statement hold a database wide lock.
// Without it callers sharing a Database must serialize access themselves.
func WithSerializedAccess() Option {
	return func(d *Database) {
		d.lock = new(sync.Mutex)
	}
}

func WithParser(aParser Parser) Option {
	return func(d *Database) {
		d.parser = aParser
	}
}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}
