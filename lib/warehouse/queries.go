package warehouse

import (
	"fmt"
	"strings"
)

const columns = "company_name, role_name, interview_question, difficulty, question_url, source, date_collected"

type queries struct {
	schema            []string
	count             string
	mergeInsert       string
	countByCompany    string
	countByDifficulty string
	companies         string
	rowsByCompany     func(n int) string
	sample            string
}

func buildQueries(d dialect, table string) queries {
	rowColumns := fmt.Sprintf(
		"id, company_name, role_name, interview_question, difficulty, question_url, source, %s, %s",
		d.timestampText("date_collected"),
		d.timestampText("created_at"),
	)

	return queries{
		schema: statements(strings.ReplaceAll(d.schema, "{{table}}", table)),
		count:  fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
		mergeInsert: d.rebind(fmt.Sprintf(`INSERT INTO %[1]s (%[2]s)
SELECT ?, ?, ?, ?, ?, ?, %[3]s
WHERE NOT EXISTS (
    SELECT 1 FROM %[1]s WHERE company_name = ? AND interview_question = ?
)`, table, columns, d.timestampParam)),
		countByCompany: fmt.Sprintf(`SELECT COALESCE(company_name, ''), COUNT(*) AS question_count
FROM %s
GROUP BY company_name
ORDER BY question_count DESC, company_name ASC`, table),
		countByDifficulty: fmt.Sprintf(`SELECT COALESCE(difficulty, ''), COUNT(*) AS question_count
FROM %s
GROUP BY difficulty
ORDER BY question_count DESC, difficulty ASC`, table),
		companies: fmt.Sprintf(`SELECT DISTINCT company_name FROM %s WHERE company_name IS NOT NULL`, table),
		rowsByCompany: func(n int) string {
			return d.rebind(fmt.Sprintf(`SELECT %s
FROM %s
WHERE company_name IN (%s)
ORDER BY company_name ASC, id ASC
LIMIT ?`, rowColumns, table, placeholders(n)))
		},
		sample: d.rebind(fmt.Sprintf(`SELECT %s
FROM %s
ORDER BY RANDOM()
LIMIT ?`, rowColumns, table)),
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
