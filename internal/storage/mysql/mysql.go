package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"steel-estimator/internal/config"
)

// MySQL error numbers the storage layer translates.
const (
	errDuplicateEntry  = 1062
	errNoReferencedRow = 1452
)

type Storage struct {
	db *sql.DB
}

func New(cfg *config.Config) (*Storage, error) {
	dsn := mysql.NewConfig()
	dsn.User = cfg.DBUser
	dsn.Passwd = cfg.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = fmt.Sprintf("%s:%d", cfg.DBHost, cfg.DBPort)
	dsn.DBName = cfg.DBName
	dsn.ParseTime = cfg.ParseTime

	return Open(dsn.FormatDSN())
}

// Open connects with a ready DSN and checks the connection.
func Open(dsn string) (*Storage, error) {
	const op = "storage.mysql.Open"

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func isMySQLError(err error, number uint16) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == number
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func floatArg(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
