package dialect

import (
	"fmt"
	"strings"
)

type Provider int

const (
	Unknown Provider = iota
	Oracle10GOrLater
	OracleBefore10G
	MySQL
	MSAccess
	SQLServer
	SQLite
	PostgreSQL
)

var providerNames = map[Provider]string{
	Unknown:          "unknown",
	Oracle10GOrLater: "oracle",
	OracleBefore10G:  "oracle-legacy",
	MySQL:            "mysql",
	MSAccess:         "msaccess",
	SQLServer:        "sqlserver",
	SQLite:           "sqlite",
	PostgreSQL:       "postgres",
}

func (p Provider) String() string {
	if name, ok := providerNames[p]; ok {
		return name
	}
	return fmt.Sprintf("provider(%d)", int(p))
}

// ParseProvider maps a database/sql driver name or a provider name to a Provider.
func ParseProvider(name string) (Provider, error) {
	switch strings.ToLower(name) {
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pq":
		return PostgreSQL, nil
	case "sqlserver", "mssql":
		return SQLServer, nil
	case "oracle", "godror":
		return Oracle10GOrLater, nil
	case "oracle-legacy", "oci8":
		return OracleBefore10G, nil
	case "msaccess", "odbc":
		return MSAccess, nil
	default:
		return Unknown, fmt.Errorf("no provider matched with driver %q", name)
	}
}

// QuoteStyle selects the characters wrapped around identifiers.
type QuoteStyle int

const (
	QuoteDefault QuoteStyle = iota
	QuoteDouble
	QuoteBrackets
	QuoteBacktick
)

func (q QuoteStyle) pair() (string, string) {
	switch q {
	case QuoteBrackets:
		return "[", "]"
	case QuoteBacktick:
		return "`", "`"
	default:
		return `"`, `"`
	}
}
