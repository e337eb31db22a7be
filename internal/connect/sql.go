package connect

import (
	"context"

	"github.com/MrSnakeDoc/navs/internal/logger"
	sqlstore "github.com/MrSnakeDoc/navs/internal/store/sql"
)

// SQL opens the SQL store for dsn, retrying while the database refuses
// connections. Schema migration runs once the connection is up.
func SQL(ctx context.Context, dsn string, opts RetryOptions, log logger.Logger) (*sqlstore.Store, error) {
	var st *sqlstore.Store
	_, err := Retry(ctx, "database", sqlstore.DialectForDSN(dsn), opts, log, func(ctx context.Context) error {
		opened, err := sqlstore.Open(dsn)
		if err != nil {
			return err
		}
		if err := opened.Ping(ctx); err != nil {
			_ = opened.Close()
			return err
		}
		st = opened
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}
