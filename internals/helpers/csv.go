package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func quoteCell(s string) string {
	return `"` + strings.ReplaceAll(lineBreaks.Replace(s), `"`, `""`) + `"`
}

// BuildCSV renders a header plus one line per row. Every cell is double-quoted,
// embedded quotes are doubled, line breaks inside a cell become spaces and
// lines are joined by "\n".
func BuildCSV(header []string, rows [][]string) string {
	var b strings.Builder
	writeLine := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteCell(cell))
		}
	}
	writeLine(header)
	for _, row := range rows {
		b.WriteByte('\n')
		writeLine(row)
	}
	return b.String()
}

func SendCSV(c *fiber.Ctx, filename, body string) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).SendString(body)
}
