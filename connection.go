package sqlbuilder

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/golobby/sqlbuilder/dialect"
	"github.com/golobby/sqlbuilder/qb"
	"github.com/golobby/sqlbuilder/schema"

	//Drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Commander is any statement builder able to produce a parameterized command.
type Commander interface {
	Command() (*qb.Command, error)
}

type ConnectionConfig struct {
	Name string
	// Driver is the database/sql driver name. It picks the provider when Options.Provider is Unknown
	// and defaults to the provider's driver.
	Driver           string
	ConnectionString string
	// DB is used as is when set; Driver and ConnectionString are then only used to pick the provider.
	DB       *sql.DB
	Options  Options
	Logger   Logger
	LogLevel LogLevel
}

// Connection executes commands built for its dialect against a database.
type Connection struct {
	Name    string
	DB      *sql.DB
	builder *Builder
	logger  Logger
}

func Connect(conf ConnectionConfig) (*Connection, error) {
	opts := conf.Options
	if opts.Provider == dialect.Unknown && conf.Driver != "" {
		p, err := dialect.ParseProvider(conf.Driver)
		if err != nil {
			return nil, err
		}
		opts.Provider = p
	}
	b, err := New(opts)
	if err != nil {
		return nil, err
	}

	logger := conf.Logger
	if logger == nil {
		zl, err := newZapLogger(conf.LogLevel)
		if err != nil {
			return nil, err
		}
		logger = zl
	}

	db := conf.DB
	if db == nil {
		driver := conf.Driver
		if driver == "" {
			driver = b.Dialect().DriverName()
		}
		if driver == "" {
			return nil, fmt.Errorf("no driver for provider %s", b.Dialect().Provider())
		}
		db, err = sql.Open(driver, conf.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("opening %s connection: %w", driver, err)
		}
	}

	name := conf.Name
	if name == "" {
		name = "default"
	}
	return &Connection{Name: name, DB: db, builder: b, logger: logger}, nil
}

func (c *Connection) Builder() *Builder {
	return c.builder
}

func (c *Connection) Dialect() *dialect.Dialect {
	return c.builder.Dialect()
}

func (c *Connection) command(cmd Commander) (*qb.Command, error) {
	built, err := cmd.Command()
	if err != nil {
		c.logger.Errorf("building command: %s", err)
		return nil, err
	}
	c.logger.Debugf("executing %s with %d parameter(s)", built.Text(), built.ParameterCount())
	return built, nil
}

func (c *Connection) Exec(ctx context.Context, cmd Commander) (sql.Result, error) {
	built, err := c.command(cmd)
	if err != nil {
		return nil, err
	}
	res, err := c.DB.ExecContext(ctx, built.Text(), built.Args()...)
	if err != nil {
		c.logger.Errorf("exec %s: %s", built.Text(), err)
		return nil, fmt.Errorf("exec: %w", err)
	}
	return res, nil
}

func (c *Connection) Query(ctx context.Context, cmd Commander) (*sql.Rows, error) {
	built, err := c.command(cmd)
	if err != nil {
		return nil, err
	}
	rows, err := c.DB.QueryContext(ctx, built.Text(), built.Args()...)
	if err != nil {
		c.logger.Errorf("query %s: %s", built.Text(), err)
		return nil, fmt.Errorf("query: %w", err)
	}
	return rows, nil
}

// Bind runs a query and scans its rows into v, a pointer to a struct or to a slice of structs.
func (c *Connection) Bind(ctx context.Context, table *schema.Table, cmd Commander, v interface{}) error {
	rows, err := c.Query(ctx, cmd)
	if err != nil {
		return err
	}
	defer rows.Close()
	return newBinder(table, c.Dialect().DateLayout()).bind(rows, v)
}

func (c *Connection) Close() error {
	return c.DB.Close()
}

// Schematic describes the connection's dialect and the given tables.
func (c *Connection) Schematic(tables ...*schema.Table) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SQL Dialect: %s\n", c.Dialect())
	for _, t := range tables {
		sb.WriteString(t.Schematic())
		sb.WriteString("\n")
	}
	return sb.String()
}
