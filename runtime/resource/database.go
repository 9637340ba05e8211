package resource

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wfl-lang/wfl/runtime/value"
)

// Database is the backend-agnostic contract `open database`/`read
// from`/`write to`/`close` compile down to, letting the interpreter
// stay oblivious to which of postgres/sqlite/redis actually backs a
// given connection string.
type Database interface {
	Read(ctx context.Context, key string) (value.Value, error)
	Write(ctx context.Context, key string, v value.Value) error
	Close() error
}

// OpenDatabase dispatches on uri's scheme and returns a *value.Resource
// wrapping the matching backend, per SPEC_FULL.md §6.1.
func OpenDatabase(ctx context.Context, uri string) (*value.Resource, Database, error) {
	switch {
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return openPostgres(ctx, uri)
	case strings.HasPrefix(uri, "redis://"):
		return openRedis(ctx, uri)
	case strings.HasPrefix(uri, "sqlite://"):
		return openSQLite(strings.TrimPrefix(uri, "sqlite://"))
	default:
		return openSQLite(uri)
	}
}

// --- postgres -------------------------------------------------------

type postgresDB struct{ pool *pgxpool.Pool }

func openPostgres(ctx context.Context, uri string) (*value.Resource, Database, error) {
	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	db := &postgresDB{pool: pool}
	res := &value.Resource{KindName: "database", ID: nextID(), Closer: db.Close}
	return res, db, nil
}

func (d *postgresDB) Read(ctx context.Context, key string) (value.Value, error) {
	row := d.pool.QueryRow(ctx, "select value from wfl_kv where key = $1", key)
	var text string
	if err := row.Scan(&text); err != nil {
		return nil, err
	}
	return value.Text(text), nil
}

func (d *postgresDB) Write(ctx context.Context, key string, v value.Value) error {
	_, err := d.pool.Exec(ctx,
		"insert into wfl_kv (key, value) values ($1, $2) on conflict (key) do update set value = excluded.value",
		key, v.ToText())
	return err
}

func (d *postgresDB) Close() error {
	d.pool.Close()
	return nil
}

// --- sqlite -----------------------------------------------------------

type sqliteDB struct{ db *sql.DB }

func openSQLite(path string) (*value.Resource, Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, err
	}
	if _, err := db.Exec(`create table if not exists wfl_kv (key text primary key, value text)`); err != nil {
		db.Close()
		return nil, nil, err
	}
	handle := &sqliteDB{db: db}
	res := &value.Resource{KindName: "database", ID: nextID(), Closer: handle.Close}
	return res, handle, nil
}

func (d *sqliteDB) Read(ctx context.Context, key string) (value.Value, error) {
	row := d.db.QueryRowContext(ctx, "select value from wfl_kv where key = ?", key)
	var text string
	if err := row.Scan(&text); err != nil {
		return nil, err
	}
	return value.Text(text), nil
}

func (d *sqliteDB) Write(ctx context.Context, key string, v value.Value) error {
	_, err := d.db.ExecContext(ctx, "insert or replace into wfl_kv (key, value) values (?, ?)", key, v.ToText())
	return err
}

func (d *sqliteDB) Close() error { return d.db.Close() }

// --- redis --------------------------------------------------------

type redisDB struct{ client *redis.Client }

func openRedis(ctx context.Context, uri string) (*value.Resource, Database, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}

	handle := &redisDB{client: client}
	res := &value.Resource{KindName: "database", ID: nextID(), Closer: handle.Close}
	return res, handle, nil
}

func (d *redisDB) Read(ctx context.Context, key string) (value.Value, error) {
	text, err := d.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return value.Nothing, nil
	}
	if err != nil {
		return nil, err
	}
	return value.Text(text), nil
}

func (d *redisDB) Write(ctx context.Context, key string, v value.Value) error {
	return d.client.Set(ctx, key, v.ToText(), 0).Err()
}

func (d *redisDB) Close() error { return d.client.Close() }
