package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/petstore/internal/models"
	"github.com/desertthunder/petstore/internal/shared"
	th "github.com/desertthunder/petstore/internal/testing"
)

func sampleStore() models.PetStoreData {
	return models.PetStoreData{
		ID:        models.Int64(1),
		StoreName: "Paws",
		Employees: []models.PetStoreEmployee{
			{ID: models.Int64(1), EmployeeName: "Alice"},
			{ID: models.Int64(2), EmployeeName: "Carol"},
		},
		Customers: []models.PetStoreCustomer{
			{ID: models.Int64(3), CustomerName: "Bob | Jr", CustomerEmail: "bob@example.com"},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleStore())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		want := []string{
			"Kind,ID,Name,Email",
			"employee,1,Alice,",
			"employee,2,Carol,",
			"customer,3,Bob | Jr,bob@example.com",
		}
		if len(lines) != len(want) {
			t.Fatalf("expected %d lines, got %d: %s", len(want), len(lines), data)
		}
		for i := range want {
			if lines[i] != want[i] {
				t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
			}
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleStore())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, part := range []string{
			"# Paws",
			"**Employees**: 2",
			"## Employees",
			"1. Alice (ID=1)",
			"2. Carol (ID=2)",
			"| ID | Name | Email |",
			`| 3 | Bob \| Jr | bob@example.com |`,
		} {
			if !strings.Contains(output, part) {
				t.Errorf("Markdown missing %q, got: %s", part, output)
			}
		}
	})

	t.Run("ExportToMarkdown without customers", func(t *testing.T) {
		store := sampleStore()
		store.Customers = nil

		data, err := ExportToMarkdown(store)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if strings.Contains(string(data), "| ID |") {
			t.Errorf("expected no customer table, got: %s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleStore())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "Pet store: Paws (ID=1)\n") {
			t.Errorf("unexpected header: %s", output)
		}
		if !strings.Contains(output, "  2. Carol\n") {
			t.Errorf("text missing Carol, got: %s", output)
		}
		if !strings.Contains(output, "  1. Bob | Jr <bob@example.com>\n") {
			t.Errorf("text missing customer, got: %s", output)
		}
	})

	t.Run("unsaved ids", func(t *testing.T) {
		data, err := ExportToText(models.PetStoreData{StoreName: "Draft"})
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		if !strings.Contains(string(data), "(ID=-)") {
			t.Errorf("expected placeholder id, got: %s", data)
		}
	})
}

func TestExport(t *testing.T) {
	tests := []struct {
		format   string
		contains string
		ext      string
	}{
		{"text", "Pet store: Paws", ".txt"},
		{"", "Pet store: Paws", ".txt"},
		{"markdown", "# Paws", ".md"},
		{"MD", "# Paws", ".md"},
		{"csv", "Kind,ID,Name,Email", ".csv"},
		{"json", `"storeName": "Paws"`, ".json"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Export(sampleStore(), tt.format)
			if err != nil {
				t.Fatalf("Export(%q) failed: %v", tt.format, err)
			}
			if !strings.Contains(string(data), tt.contains) {
				t.Errorf("Export(%q) missing %q, got: %s", tt.format, tt.contains, data)
			}
			if ext := Extension(tt.format); ext != tt.ext {
				t.Errorf("Extension(%q) = %q, want %q", tt.format, ext, tt.ext)
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		_, err := Export(sampleStore(), "pdf")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	compact, err := MarshalJSON(sampleStore().Summary(), false)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(compact) != `{"id":1,"storeName":"Paws","customers":[],"employees":[]}`+"\n" {
		t.Errorf("unexpected compact JSON: %s", compact)
	}

	pretty, err := MarshalJSON(sampleStore(), true)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}

	var decoded models.PetStoreData
	if err := json.Unmarshal(pretty, &decoded); err != nil {
		t.Fatalf("pretty JSON does not decode: %v", err)
	}
	if len(decoded.Employees) != 2 || decoded.StoreID() != 1 {
		t.Errorf("unexpected decoded store: %+v", decoded)
	}

	if _, err := MarshalJSON(make(chan int), false); err == nil {
		t.Error("expected error for unsupported value")
	}
}

func TestSummariesToText(t *testing.T) {
	stores := []models.PetStoreData{
		{ID: models.Int64(1), StoreName: "Paws"},
		{ID: models.Int64(2), StoreName: "Claws"},
	}

	if got := string(SummariesToText(stores)); got != "1\tPaws\n2\tClaws\n" {
		t.Errorf("unexpected summaries: %q", got)
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("WithDirectory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "exports")

		path, err := WriteExport(sampleStore(), "markdown", dir)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}

		if path != filepath.Join(dir, "pet_store_1.md") {
			t.Errorf("unexpected path %s", path)
		}
		th.AssertFileExists(t, path)

		if content := th.MustReadFile(t, path); !strings.Contains(content, "# Paws") {
			t.Errorf("unexpected content: %s", content)
		}
	})

	t.Run("WithDefaultDirectory", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		path, err := WriteExport(sampleStore(), "csv", "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}

		th.AssertFileExists(t, filepath.Join(tempDir, "pet_store_1.csv"))
		if path != "pet_store_1.csv" {
			t.Errorf("unexpected path %s", path)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		if _, err := WriteExport(sampleStore(), "pdf", t.TempDir()); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
