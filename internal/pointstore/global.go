package pointstore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/schema"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Global Manager instance for main logic.
var (
	Manager   = &PointStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// PointStoreManager holds the configured point store behind a mutex.
type PointStoreManager struct {
	sync.Mutex
	store contract.PointStore
}

var _ contract.StoreManager = &PointStoreManager{} // Compile-time check

// GetPointStore implements the StoreManager interface.
func (m *PointStoreManager) GetPointStore() contract.PointStore {
	m.Lock()
	defer m.Unlock()
	return m.store
}

// InitStore initializes the global store manager. The InfluxDB backend needs
// a database name; SQL backends interpret connStr per driver, with SQLite
// falling back to a file in the home directory.
func InitStore(cfg *contract.Config) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		var store contract.PointStore
		var err error

		switch cfg.StoreBackend {
		case schema.InfluxBackend:
			store, err = NewInfluxPointStore(cfg.StoreDBConnect, "", "", cfg.InfluxDatabase)
		default:
			store, err = NewSQLPointStore(cfg.StoreBackend, cfg.StoreDBConnect)
		}
		if err != nil {
			initErr = fmt.Errorf("failed to initialize point store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.store = store
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// ClearStore clears recorded points for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the points table.
// For InfluxDB, it drops the configured database.
// For NoneBackend, it does nothing.
func ClearStore(cfg *contract.Config) error {
	switch cfg.StoreBackend {
	case schema.SQLiteBackend:
		dbFilePath := cfg.StoreDBConnect
		if dbFilePath == "" {
			dbFilePath = contract.GetStoreDBFilePath()
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", cfg.StoreDBConnect, pointsTable)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", cfg.StoreDBConnect, pointsTable)

	case schema.InfluxBackend:
		return DropInfluxDatabase(cfg.StoreDBConnect, "", "", cfg.InfluxDatabase)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", cfg.StoreBackend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
