// package formatter provides functions to export pet store data to various formats (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/petstore/internal/models"
	"github.com/desertthunder/petstore/internal/shared"
)

// Format names accepted by [Export].
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
)

// Formats lists every supported format name.
var Formats = []string{FormatText, FormatMarkdown, FormatCSV, FormatJSON}

// Export renders a store in the named format.
func Export(data models.PetStoreData, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatText, "txt", "":
		return ExportToText(data)
	case FormatMarkdown, "md":
		return ExportToMarkdown(data)
	case FormatCSV:
		return ExportToCSV(data)
	case FormatJSON:
		return MarshalJSON(data, true)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidArgument, format, strings.Join(Formats, ", "))
	}
}

// Extension returns the file extension for a format name.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case FormatMarkdown, "md":
		return ".md"
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// ExportToCSV converts a store to CSV with columns: Kind, ID, Name, Email. Employees come first, then customers.
func ExportToCSV(data models.PetStoreData) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Kind", "ID", "Name", "Email"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range data.Employees {
		record := []string{"employee", formatID(e.ID), e.EmployeeName, ""}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	for _, c := range data.Customers {
		record := []string{"customer", formatID(c.ID), c.CustomerName, c.CustomerEmail}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a store to Markdown with one section per child collection
func ExportToMarkdown(data models.PetStoreData) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", data.StoreName))
	buf.WriteString(fmt.Sprintf("**ID**: %s\n", formatID(data.ID)))
	buf.WriteString(fmt.Sprintf("**Employees**: %d\n", len(data.Employees)))
	buf.WriteString(fmt.Sprintf("**Customers**: %d\n\n", len(data.Customers)))

	buf.WriteString("## Employees\n\n")
	for i, e := range data.Employees {
		buf.WriteString(fmt.Sprintf("%d. %s (ID=%s)\n", i+1, e.EmployeeName, formatID(e.ID)))
	}

	buf.WriteString("\n## Customers\n\n")
	if len(data.Customers) > 0 {
		buf.WriteString("| ID | Name | Email |\n")
		buf.WriteString("|----|------|-------|\n")
	}
	for _, c := range data.Customers {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s |\n", formatID(c.ID), escapeCell(c.CustomerName), escapeCell(c.CustomerEmail)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a store to plain text format
func ExportToText(data models.PetStoreData) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Pet store: %s (ID=%s)\n", data.StoreName, formatID(data.ID)))

	buf.WriteString(fmt.Sprintf("Employees: %d\n", len(data.Employees)))
	for i, e := range data.Employees {
		buf.WriteString(fmt.Sprintf("  %d. %s\n", i+1, e.EmployeeName))
	}

	buf.WriteString(fmt.Sprintf("Customers: %d\n", len(data.Customers)))
	for i, c := range data.Customers {
		buf.WriteString(fmt.Sprintf("  %d. %s <%s>\n", i+1, c.CustomerName, c.CustomerEmail))
	}

	return buf.Bytes(), nil
}

// SummariesToText renders one line per store: id and name.
func SummariesToText(stores []models.PetStoreData) []byte {
	var buf bytes.Buffer
	for _, s := range stores {
		buf.WriteString(fmt.Sprintf("%s\t%s\n", formatID(s.ID), s.StoreName))
	}
	return buf.Bytes()
}

// MarshalJSON encodes v as JSON, indented when pretty is set, with a trailing newline.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// WriteExport renders a store in format and writes it to dir as pet_store_{id}{ext}, returning the path.
func WriteExport(data models.PetStoreData, format, dir string) (string, error) {
	content, err := Export(data, format)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("pet_store_%s%s", formatID(data.ID), Extension(format)))
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func formatID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
