//go:build !wasm

package sqlorm

import (
	"github.com/go-sql-driver/mysql"
	"github.com/tinywasm/fmt"
)

// Config describes the shared connection pool opened by Open.
// Zero values fall back to the defaults noted on each field.
//
// MinSize is applied as the pool's maximum idle connection count: up to
// MinSize released connections are kept open for reuse. database/sql opens
// connections on demand, so no connections are opened ahead of use.
type Config struct {
	Driver     string // "mysql"
	DSN        string // used verbatim when set; the fields below are ignored
	Host       string // "localhost"
	Port       int    // 3306
	User       string
	Password   string
	DB         string
	Charset    string // "utf8mb4"
	Autocommit *bool  // true
	MaxSize    int    // 10 open connections
	MinSize    int    // 1; idle connections kept, not pre-opened
}

func (c Config) withDefaults() Config {
	if c.Driver == "" {
		c.Driver = "mysql"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 3306
	}
	if c.Charset == "" {
		c.Charset = "utf8mb4"
	}
	if c.Autocommit == nil {
		on := true
		c.Autocommit = &on
	}
	if c.MaxSize <= 0 {
		c.MaxSize = 10
	}
	if c.MinSize <= 0 {
		c.MinSize = 1
	}
	if c.MinSize > c.MaxSize {
		c.MinSize = c.MaxSize
	}
	return c
}

// FormatDSN returns the data source name for the configured database.
func (c Config) FormatDSN() string {
	c = c.withDefaults()
	if c.DSN != "" {
		return c.DSN
	}

	autocommit := "false"
	if *c.Autocommit {
		autocommit = "true"
	}

	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	mc.DBName = c.DB
	mc.ParseTime = true
	mc.Params = map[string]string{
		"autocommit": autocommit,
		"charset":    c.Charset,
	}
	return mc.FormatDSN()
}
