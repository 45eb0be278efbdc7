package warehouse

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

//go:embed schema_postgres.sql
var postgresSchema string

const (
	DriverSqlite   = "sqlite"
	DriverLibsql   = "libsql"
	DriverPostgres = "postgres"
)

const DefaultTable = "interview_questions"

type dialect struct {
	name   string
	schema string
	// converts `?` placeholders into the driver's native form
	rebind func(query string) string
	// wraps the placeholder bound to date_collected
	timestampParam string
	// renders a timestamp column as `YYYY-MM-DD HH:MM:SS` text
	timestampText func(column string) string
}

var sqliteDialect = dialect{
	name:           "sqlite",
	schema:         sqliteSchema,
	rebind:         func(q string) string { return q },
	timestampParam: "?",
	timestampText: func(column string) string {
		return fmt.Sprintf("COALESCE(CAST(%s AS TEXT), '')", column)
	},
}

var postgresDialect = dialect{
	name:           "postgres",
	schema:         postgresSchema,
	rebind:         rebindDollar,
	timestampParam: "CAST(? AS TIMESTAMP)",
	timestampText: func(column string) string {
		return fmt.Sprintf("COALESCE(TO_CHAR(%s, 'YYYY-MM-DD HH24:MI:SS'), '')", column)
	},
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSqlite, DriverLibsql:
		return sqliteDialect, nil
	case DriverPostgres:
		return postgresDialect, nil
	}
	return dialect{}, fmt.Errorf("unknown warehouse driver %q", driver)
}

// rebindDollar turns `?` into `$1`, `$2`, ... none of the queries in this
// package carry a literal `?`.
func rebindDollar(query string) string {
	var out strings.Builder
	n := 0
	for _, c := range query {
		if c != '?' {
			out.WriteRune(c)
			continue
		}
		n++
		out.WriteString("$")
		out.WriteString(strconv.Itoa(n))
	}
	return out.String()
}

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validTable(name string) bool {
	return identifierRegex.MatchString(name)
}

// statements splits a schema file into individual statements, some drivers
// refuse more than one statement per Exec.
func statements(schema string) []string {
	var out []string
	for _, stmt := range strings.Split(schema, ";") {
		var lines []string
		for _, line := range strings.Split(stmt, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt = strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
