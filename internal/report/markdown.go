package report

import (
	"bytes"
	"fmt"

	"lookupdoc/internal/domain"
)

// WriteSection renders one table's section:
//
//	## <name>
//
//	**Rows:** <count>
//
//	**Schema:**
//	- `<column>`: <type>
//
//	**All Values:**
//	```
//	(<row>)
//	```
//
//	---
func WriteSection(buf *bytes.Buffer, name string, count int64, columns []domain.Column, rows []domain.Row) {
	fmt.Fprintf(buf, "## %s\n\n", name)
	fmt.Fprintf(buf, "**Rows:** %d\n\n", count)

	buf.WriteString("**Schema:**\n")
	for _, c := range columns {
		fmt.Fprintf(buf, "- `%s`: %s\n", c.Name, c.Type)
	}
	buf.WriteString("\n")

	buf.WriteString("**All Values:**\n")
	buf.WriteString("```\n")
	for _, r := range rows {
		buf.WriteString(FormatRow(r))
		buf.WriteByte('\n')
	}
	buf.WriteString("```\n\n")
	buf.WriteString("---\n\n")
}
