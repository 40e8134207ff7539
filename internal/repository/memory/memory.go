// FilePath: internal/repository/memory/memory.go
package memory

import (
	"context"
	"database/sql"

	"github.com/itsatony/beachwatch/server/hub/internal/errors"
)

// noopTx satisfies database.Transaction for the embedded backend, where
// every repository operation is already atomic under its own lock.
type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }
func (noopTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func repositoryNotFound(msg string) error {
	return errors.NewNotFoundError(msg, nil)
}
