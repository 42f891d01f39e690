package db

import "fmt"

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open returns the ledger backend for driver. source is a lib/pq DSN for
// postgres and a file path for sqlite; memory ignores it.
func Open(driver, source string) (Ledger, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryLedger(), nil
	case DriverPostgres:
		return OpenPostgres(source)
	case DriverSQLite:
		return OpenSQLite(source)
	default:
		return nil, fmt.Errorf("unknown ledger driver %q", driver)
	}
}
