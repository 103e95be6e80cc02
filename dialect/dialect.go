package dialect

import (
	"fmt"
	"strings"
)

// Profile holds the provider specific strings and capabilities consulted while rendering.
type Profile struct {
	Provider                  Provider
	DriverName                string
	PlaceholderChar           string
	IncludeIndexInPlaceholder bool
	NamedPlaceholders         bool
	QuoteStyle                QuoteStyle
	StringQuote               string
	DateType                  string
	InternalDateFormat        string
	SupportsLimit             bool
	// DatesAsText binds Date parameters as text in the date layout, for engines storing dates in text columns.
	DatesAsText bool
	// AlterColumn is a fmt pattern receiving column and type. Empty means the provider cannot alter columns.
	AlterColumn string
	// DateFunc wraps a date literal. nil means the provider has no date literal support.
	DateFunc func(value, format string) string
}

var Profiles = map[Provider]*Profile{
	Unknown: {
		Provider:        Unknown,
		PlaceholderChar: "?",
		QuoteStyle:      QuoteDouble,
		StringQuote:     "'",
		DateType:        "DATETIME",
		SupportsLimit:   true,
	},
	Oracle10GOrLater: {
		Provider:                  Oracle10GOrLater,
		DriverName:                "oracle",
		PlaceholderChar:           ":",
		IncludeIndexInPlaceholder: true,
		NamedPlaceholders:         true,
		QuoteStyle:                QuoteDouble,
		StringQuote:               "'",
		DateType:                  "DATE",
		InternalDateFormat:        "YYYY-MM-DD HH24:MI:SS",
		SupportsLimit:             false,
		AlterColumn:               "MODIFY %s %s",
		DateFunc:                  toDate,
	},
	OracleBefore10G: {
		Provider:                  OracleBefore10G,
		DriverName:                "oci8",
		PlaceholderChar:           ":",
		IncludeIndexInPlaceholder: true,
		NamedPlaceholders:         true,
		QuoteStyle:                QuoteDouble,
		StringQuote:               "'",
		DateType:                  "DATE",
		InternalDateFormat:        "YYYY-MM-DD HH24:MI:SS",
		SupportsLimit:             false,
		AlterColumn:               "MODIFY COLUMN %s %s",
		DateFunc:                  toDate,
	},
	MySQL: {
		Provider:           MySQL,
		DriverName:         "mysql",
		PlaceholderChar:    "?",
		QuoteStyle:         QuoteBacktick,
		StringQuote:        "'",
		DateType:           "DATETIME",
		InternalDateFormat: "%Y-%m-%d %H:%i:%s",
		SupportsLimit:      true,
		AlterColumn:        "MODIFY COLUMN %s %s",
		DateFunc: func(value, format string) string {
			return fmt.Sprintf("STR_TO_DATE('%s', '%s')", value, format)
		},
	},
	MSAccess: {
		Provider:           MSAccess,
		DriverName:         "odbc",
		PlaceholderChar:    "?",
		QuoteStyle:         QuoteBrackets,
		StringQuote:        "'",
		DateType:           "DATETIME",
		InternalDateFormat: "yyyy-mm-dd hh:nn:ss",
		SupportsLimit:      false,
		AlterColumn:        "ALTER COLUMN %s %s",
		DateFunc: func(value, _ string) string {
			return "#" + value + "#"
		},
	},
	SQLServer: {
		Provider:                  SQLServer,
		DriverName:                "sqlserver",
		PlaceholderChar:           "@",
		IncludeIndexInPlaceholder: true,
		NamedPlaceholders:         true,
		QuoteStyle:                QuoteBrackets,
		StringQuote:               "'",
		DateType:                  "DATETIME",
		InternalDateFormat:        "120",
		SupportsLimit:             false,
		AlterColumn:               "ALTER COLUMN %s %s",
		DateFunc: func(value, format string) string {
			return fmt.Sprintf("CONVERT(DATETIME, '%s', %s)", value, format)
		},
	},
	SQLite: {
		Provider:                  SQLite,
		DriverName:                "sqlite3",
		PlaceholderChar:           "@",
		IncludeIndexInPlaceholder: true,
		NamedPlaceholders:         true,
		QuoteStyle:                QuoteDouble,
		StringQuote:               "'",
		DateType:                  "TEXT",
		InternalDateFormat:        "YYYY-MM-DD HH:MM:SS",
		SupportsLimit:             true,
		DatesAsText:               true,
		DateFunc: func(value, _ string) string {
			return fmt.Sprintf("datetime('%s')", value)
		},
	},
	PostgreSQL: {
		Provider:                  PostgreSQL,
		DriverName:                "postgres",
		PlaceholderChar:           "$",
		IncludeIndexInPlaceholder: true,
		QuoteStyle:                QuoteDouble,
		StringQuote:               "'",
		DateType:                  "TIMESTAMP",
		InternalDateFormat:        "YYYY-MM-DD HH24:MI:SS",
		SupportsLimit:             true,
		AlterColumn:               "ALTER COLUMN %s TYPE %s",
		DateFunc:                  toTimestamp,
	},
}

func toDate(value, format string) string {
	return fmt.Sprintf("TO_DATE('%s', '%s')", value, format)
}

func toTimestamp(value, format string) string {
	return fmt.Sprintf("TO_TIMESTAMP('%s', '%s')", value, format)
}

// DefaultDateLayout is the Go time layout used to read and print Date column values.
const DefaultDateLayout = "2006-01-02 15:04:05"

// Options configures a Dialect. The zero value targets the Unknown provider without identifier quoting.
type Options struct {
	Provider Provider
	// QuoteIdentifiers wraps every table and column name in the provider's quote characters.
	QuoteIdentifiers bool
	// QuoteStyle overrides the provider's quote characters when QuoteIdentifiers is set.
	QuoteStyle QuoteStyle
	// InternalDateFormat overrides the format string handed to the provider's date function.
	InternalDateFormat string
	// DateLayout overrides DefaultDateLayout.
	DateLayout string
}

// Dialect is an immutable view of a provider profile combined with caller options.
// It is safe for concurrent use.
type Dialect struct {
	profile *Profile
	opts    Options
}

func New(opts Options) (*Dialect, error) {
	p, exists := Profiles[opts.Provider]
	if !exists {
		return nil, fmt.Errorf("no profile registered for provider %d", opts.Provider)
	}
	return &Dialect{profile: p, opts: opts}, nil
}

// MustNew is like New but panics on an unregistered provider.
func MustNew(opts Options) *Dialect {
	d, err := New(opts)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Dialect) Provider() Provider { return d.profile.Provider }

func (d *Dialect) DriverName() string { return d.profile.DriverName }

func (d *Dialect) Options() Options { return d.opts }

// Configured reports whether a concrete provider was chosen.
func (d *Dialect) Configured() bool { return d.profile.Provider != Unknown }

func (d *Dialect) quoteStyle() QuoteStyle {
	if d.opts.QuoteStyle != QuoteDefault {
		return d.opts.QuoteStyle
	}
	return d.profile.QuoteStyle
}

// Ident formats a bare identifier.
func (d *Dialect) Ident(name string) string {
	if !d.opts.QuoteIdentifiers {
		return name
	}
	l, r := d.quoteStyle().pair()
	return l + strings.ReplaceAll(name, r, r+r) + r
}

// Qualified formats a table.column pair.
func (d *Dialect) Qualified(table, column string) string {
	return d.Ident(table) + "." + d.Ident(column)
}

func (d *Dialect) QuoteString(value string) string {
	q := d.profile.StringQuote
	return q + value + q
}

func (d *Dialect) DateType() string { return d.profile.DateType }

func (d *Dialect) InternalDateFormat() string {
	if d.opts.InternalDateFormat != "" {
		return d.opts.InternalDateFormat
	}
	return d.profile.InternalDateFormat
}

func (d *Dialect) DateLayout() string {
	if d.opts.DateLayout != "" {
		return d.opts.DateLayout
	}
	return DefaultDateLayout
}

// DateLiteral wraps value in the provider's date conversion. ok is false when the provider has none.
func (d *Dialect) DateLiteral(value string) (literal string, ok bool) {
	if d.profile.DateFunc == nil {
		return "", false
	}
	return d.profile.DateFunc(value, d.InternalDateFormat()), true
}

func (d *Dialect) SupportsLimit() bool { return d.profile.SupportsLimit }

// DatesAsText reports whether Date parameters are bound as text formatted with DateLayout.
func (d *Dialect) DatesAsText() bool { return d.profile.DatesAsText }

// AlterColumn renders the clause changing a column's type. ok is false when the provider cannot alter columns.
func (d *Dialect) AlterColumn(column, typ string) (clause string, ok bool) {
	if d.profile.AlterColumn == "" {
		return "", false
	}
	return fmt.Sprintf(d.profile.AlterColumn, d.Ident(column), typ), true
}

// ParameterPrefix is the character in front of a bound parameter in statement text.
func (d *Dialect) ParameterPrefix() string { return d.profile.PlaceholderChar }

// NamedParameters reports whether placeholders refer to parameters by name rather than position.
func (d *Dialect) NamedParameters() bool { return d.profile.NamedPlaceholders }

// Placeholder returns the text standing for the idx'th (1 based) parameter called name.
func (d *Dialect) Placeholder(name string, idx int) string {
	switch {
	case d.profile.NamedPlaceholders:
		return d.profile.PlaceholderChar + name
	case d.profile.IncludeIndexInPlaceholder:
		return fmt.Sprintf("%s%d", d.profile.PlaceholderChar, idx)
	default:
		return d.profile.PlaceholderChar
	}
}

func (d *Dialect) String() string {
	return d.profile.Provider.String()
}
