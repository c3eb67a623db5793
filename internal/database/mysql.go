package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	mysql "github.com/go-sql-driver/mysql"

	"github.com/F3-Nation/slack-reminders/internal/config"
)

// Region database names come from the settings store, not from code, so
// they are allow-listed before ever reaching a query string.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9$_]+$`)

// ValidDatabaseName reports whether name is a safe MySQL schema
// identifier.
func ValidDatabaseName(name string) bool {
	return identifierPattern.MatchString(name)
}

// QuoteIdentifier backtick-quotes an already-validated identifier.
func QuoteIdentifier(name string) string {
	return "`" + name + "`"
}

// OpenPaxminer opens a connection to one region's PAXminer database.
// Each region gets its own connection, opened inside that region's
// iteration and closed before the next region starts.
func OpenPaxminer(ctx context.Context, cfg config.PaxminerConfig, database string) (*sql.DB, error) {
	if !ValidDatabaseName(database) {
		return nil, fmt.Errorf("invalid paxminer database name %q", database)
	}

	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = cfg.Host
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = database
	mc.ParseTime = true
	mc.Timeout = cfg.ConnTimeout

	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, fmt.Errorf("build paxminer connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping paxminer database %s: %w", database, err)
	}

	return db, nil
}
