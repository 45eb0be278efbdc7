// Package warehouse stores canonical interview question records in a SQL
// table and merges new batches into it without duplicating natural keys.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	devenv "interview-harvest/dev/env"
	"net/url"
	"os"
	"strings"

	"github.com/lib/pq"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"go.opentelemetry.io/otel"
	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("interview-harvest/lib/warehouse")

type Config struct {
	// one of sqlite, libsql or postgres
	Driver string `json:"driver"`
	// sqlite database file, `<dev_state>/...` paths are resolved
	File string `json:"file"`
	// libsql server url
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
	// postgres connection string, either url or key=value form
	DSN      string `json:"dsn"`
	Password string `json:"password"`
	// defaults to interview_questions
	Table string `json:"table"`
}

type Store struct {
	db      *sql.DB
	driver  string
	table   string
	dialect dialect
	qry     queries
}

// New wraps an already opened database.
func New(db *sql.DB, driver, table string) (Store, error) {
	if table == "" {
		table = DefaultTable
	}
	if !validTable(table) {
		return Store{}, fmt.Errorf("invalid table name %q", table)
	}
	d, err := dialectFor(driver)
	if err != nil {
		return Store{}, err
	}
	return Store{
		db:      db,
		driver:  driver,
		table:   table,
		dialect: d,
		qry:     buildQueries(d, table),
	}, nil
}

// Open connects to the configured warehouse and verifies the connection.
func Open(ctx context.Context, config Config) (Store, error) {
	driver := config.Driver
	if driver == "" {
		driver = DriverSqlite
	}

	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case DriverSqlite:
		db, err = openSqlite(config.File)
	case DriverLibsql:
		db, err = openLibsql(config.Url, config.AuthToken)
	case DriverPostgres:
		db, err = openPostgres(config.DSN, config.Password)
	default:
		err = fmt.Errorf("unknown warehouse driver %q", driver)
	}
	if err != nil {
		return Store{}, err
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return Store{}, err
	}

	store, err := New(db, driver, config.Table)
	if err != nil {
		db.Close()
		return Store{}, err
	}
	return store, nil
}

func openSqlite(file string) (*sql.DB, error) {
	if file == "" {
		return nil, fmt.Errorf("a path was not specified")
	}
	if file == ":memory:" {
		db, err := sql.Open("sqlite", file)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1)
		return db, nil
	}

	dbpath, err := devenv.ResolvePath(file)
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(dbpath)
	if os.IsNotExist(statErr) {
		f, err := os.Create(dbpath)
		if err != nil {
			return nil, err
		}
		f.Close()
	}

	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, err
	}
	// sqlite only permits a single writer
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func openLibsql(serverUrl, authToken string) (*sql.DB, error) {
	if serverUrl == "" {
		return nil, fmt.Errorf("a libsql url was not specified")
	}
	dsn := serverUrl
	if authToken != "" {
		parsed, err := url.Parse(serverUrl)
		if err != nil {
			return nil, err
		}
		query := parsed.Query()
		query.Set("authToken", authToken)
		parsed.RawQuery = query.Encode()
		dsn = parsed.String()
	}
	return sql.Open("libsql", dsn)
}

func openPostgres(dsn, password string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("a postgres dsn was not specified")
	}
	if password != "" {
		var err error
		dsn, err = withPassword(dsn, password)
		if err != nil {
			return nil, err
		}
	}
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(connector), nil
}

func withPassword(dsn, password string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		parsed, err := url.Parse(dsn)
		if err != nil {
			return "", err
		}
		username := ""
		if parsed.User != nil {
			username = parsed.User.Username()
		}
		parsed.User = url.UserPassword(username, password)
		return parsed.String(), nil
	}
	quoted := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(password)
	return fmt.Sprintf("%s password='%s'", dsn, quoted), nil
}

func (s Store) DB() *sql.DB {
	return s.db
}

func (s Store) Driver() string {
	return s.driver
}

func (s Store) Table() string {
	return s.table
}

func (s Store) Close() error {
	return s.db.Close()
}

// Setup creates the question table and its index if they do not exist.
func (s Store) Setup(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Setup")
	defer span.End()

	for _, stmt := range s.qry.schema {
		_, err := s.db.ExecContext(ctx, stmt)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("setup %s: %w", s.table, err)
		}
	}
	return nil
}
