package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/phrazzld/core-api/internal/config"
	"github.com/phrazzld/core-api/internal/redact"
)

// Driver names registered with database/sql.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// ErrUnsupportedEngine is returned for an engine outside config's supported set.
var ErrUnsupportedEngine = errors.New("unsupported database engine")

// Pool defaults applied by Open.
const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// DataSource returns the database/sql driver name and DSN for cfg. Relative
// SQLite paths are resolved against baseDir.
func DataSource(cfg config.DatabaseConfig, baseDir string) (driver, dsn string, err error) {
	switch cfg.Engine {
	case config.EngineMySQL:
		return DriverMySQL, mysqlDSN(cfg), nil
	case config.EnginePostgreSQL:
		dsn := postgresDSN(cfg)
		if _, err := pgx.ParseConfig(dsn); err != nil {
			return "", "", fmt.Errorf("invalid postgres connection settings: %s", redact.Error(err))
		}
		return DriverPostgres, dsn, nil
	case config.EngineSQLite:
		path := cfg.Name
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		return DriverSQLite, path, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedEngine, cfg.Engine)
	}
}

func mysqlDSN(cfg config.DatabaseConfig) string {
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password.Reveal()
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.Name
	c.ParseTime = true
	c.Params = map[string]string{"autocommit": strconv.FormatBool(cfg.Autocommit)}
	return c.FormatDSN()
}

func postgresDSN(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password.Reveal()),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	return u.String()
}

// Open prepares a connection pool for cfg without connecting.
func Open(cfg config.DatabaseConfig, baseDir string) (*sql.DB, error) {
	driver, dsn, err := DataSource(cfg, baseDir)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %s", redact.Values(err.Error(), cfg.Password.Reveal()))
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	return db, nil
}

// Ping verifies connectivity, bounded by a short timeout. Credentials are
// scrubbed from the returned error.
func Ping(ctx context.Context, db *sql.DB, cfg config.DatabaseConfig) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %s", redact.Values(err.Error(), cfg.Password.Reveal()))
	}
	return nil
}
