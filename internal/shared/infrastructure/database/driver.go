package database

import "strings"

// Driver is a capture store backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverRedis    Driver = "redis"
)

// String returns the driver name.
func (d Driver) String() string {
	return string(d)
}

// IsValid reports whether d is a known backend.
func (d Driver) IsValid() bool {
	switch d {
	case DriverPostgres, DriverSQLite, DriverRedis:
		return true
	default:
		return false
	}
}

// DetectDriver infers the backend from a connection string. An empty URL selects
// SQLite so the CLI works without any setup.
func DetectDriver(url string) Driver {
	switch {
	case url == "":
		return DriverSQLite
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		return DriverRedis
	case strings.HasPrefix(url, "sqlite://"),
		strings.HasPrefix(url, "file:"),
		strings.HasSuffix(url, ".db"),
		strings.HasSuffix(url, ".sqlite"),
		strings.HasSuffix(url, ".sqlite3"):
		return DriverSQLite
	default:
		return DriverPostgres
	}
}

// ResolveDriver picks the backend from an explicit store name, falling back to
// DetectDriver on the database URL.
func ResolveDriver(store, databaseURL string) Driver {
	if d := Driver(strings.ToLower(strings.TrimSpace(store))); d.IsValid() {
		return d
	}
	return DetectDriver(databaseURL)
}
