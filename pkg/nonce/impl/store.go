package impl

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3" // migration for sqlite3
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
	logger "github.com/rs/zerolog/log"
	"github.com/textileio/go-ethmiddleware/pkg/nonce"
	"go.opentelemetry.io/otel/attribute"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PendingStore journals pending transactions in SQLite.
type PendingStore struct {
	log   zerolog.Logger
	sqlDB *sql.DB
}

var _ nonce.PendingStore = (*PendingStore)(nil)

// NewPendingStore opens (or creates) the SQLite database at path and runs the migrations.
func NewPendingStore(path string) (*PendingStore, error) {
	sqlDB, err := otelsql.Open("sqlite3", path, otelsql.WithAttributes(
		attribute.String("name", "noncestore"),
	))
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %s", err)
	}
	if err := otelsql.RegisterDBStatsMetrics(sqlDB, otelsql.WithAttributes(
		attribute.String("name", "noncestore"),
	)); err != nil {
		return nil, fmt.Errorf("registering dbstats: %s", err)
	}

	log := logger.With().
		Str("component", "noncestore").
		Logger()

	s := &PendingStore{
		log:   log,
		sqlDB: sqlDB,
	}
	if err := s.executeMigration(path); err != nil {
		return nil, fmt.Errorf("initializing db connection: %s", err)
	}

	return s, nil
}

// InsertPendingTx journals a pending transaction.
func (s *PendingStore) InsertPendingTx(
	ctx context.Context, chainID uint64, addr common.Address, nonce uint64, hash common.Hash,
) error {
	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO pending_txs (chain_id, address, hash, nonce, created_at) VALUES (?1, ?2, ?3, ?4, ?5)`,
		int64(chainID), addr.Hex(), hash.Hex(), int64(nonce), time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("nonce store insert pending tx: %s", err)
	}

	return nil
}

// ListPendingTx lists the pending transactions of an address, ordered by nonce.
func (s *PendingStore) ListPendingTx(
	ctx context.Context, chainID uint64, addr common.Address,
) ([]nonce.PendingTx, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT hash, nonce, created_at FROM pending_txs WHERE chain_id = ?1 AND address = ?2 ORDER BY nonce`,
		int64(chainID), addr.Hex(),
	)
	if err != nil {
		return nil, fmt.Errorf("nonce store list pending tx: %s", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.log.Error().Err(err).Msg("closing rows")
		}
	}()

	pendingTxs := make([]nonce.PendingTx, 0)
	for rows.Next() {
		var (
			hash      string
			n         int64
			createdAt int64
		)
		if err := rows.Scan(&hash, &n, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning pending tx: %s", err)
		}
		pendingTxs = append(pendingTxs, nonce.PendingTx{
			ChainID:   chainID,
			Address:   addr,
			Nonce:     uint64(n),
			Hash:      common.HexToHash(hash),
			CreatedAt: time.Unix(createdAt, 0),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pending txs: %s", err)
	}

	return pendingTxs, nil
}

// DeletePendingTxByHash deletes a pending transaction.
func (s *PendingStore) DeletePendingTxByHash(ctx context.Context, chainID uint64, hash common.Hash) error {
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM pending_txs WHERE chain_id = ?1 AND hash = ?2`,
		int64(chainID), hash.Hex(),
	); err != nil {
		return fmt.Errorf("nonce store delete pending tx: %s", err)
	}

	return nil
}

// Close closes the database.
func (s *PendingStore) Close() error {
	if err := s.sqlDB.Close(); err != nil {
		return fmt.Errorf("close: %s", err)
	}

	return nil
}

func (s *PendingStore) executeMigration(path string) error {
	d, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("creating source driver: %s", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, "sqlite3://"+path)
	if err != nil {
		return fmt.Errorf("creating migration: %s", err)
	}
	version, dirty, err := m.Version()
	s.log.Info().
		Uint("dbVersion", version).
		Bool("dirty", dirty).
		Err(err).
		Msg("database migration executed")

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migration up: %s", err)
	}

	return nil
}
