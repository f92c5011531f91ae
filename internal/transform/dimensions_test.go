//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package transform

import (
	"testing"
	"time"

	"github.com/salescube/salescube/internal/extract"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func record(branch, city, product string, dt time.Time) extract.RawRecord {
	return extract.RawRecord{
		InvoiceID:   "000-00-0000",
		Branch:      branch,
		City:        city,
		ProductLine: product,
		UnitPrice:   10,
		Quantity:    2,
		Tax:         1,
		Total:       21,
		Date:        dt,
		GrossIncome: 1,
		Rating:      7,
	}
}

func TestBuildDateDim(t *testing.T) {
	records := []extract.RawRecord{
		record("A", "Yangon", "Food and beverages", date(2019, 1, 5)),
		record("B", "Mandalay", "Health and beauty", date(2019, 3, 8)),
		record("A", "Yangon", "Food and beverages", date(2019, 1, 5)),
	}

	dim := BuildDateDim(records)
	if len(dim.Rows) != 2 {
		t.Fatalf("Expected 2 date rows, got %d", len(dim.Rows))
	}

	first := dim.Rows[0]
	if first.ID != 1 {
		t.Errorf("First surrogate key should be 1, got %d", first.ID)
	}
	if first.Year != 2019 || first.Month != 1 || first.Day != 5 {
		t.Errorf("Unexpected date parts: %d-%d-%d", first.Year, first.Month, first.Day)
	}
	if first.Weekday != "Saturday" {
		t.Errorf("2019-01-05 is a Saturday, got %q", first.Weekday)
	}

	if id, ok := dim.Key(date(2019, 3, 8)); !ok || id != 2 {
		t.Errorf("Expected key 2 for second date, got (%d, %v)", id, ok)
	}
}

func TestBuildDateDimSkipsZeroDate(t *testing.T) {
	records := []extract.RawRecord{
		record("A", "Yangon", "Food and beverages", time.Time{}),
		record("A", "Yangon", "Food and beverages", date(2019, 1, 5)),
	}

	dim := BuildDateDim(records)
	if len(dim.Rows) != 1 {
		t.Errorf("Expected 1 date row, got %d", len(dim.Rows))
	}
	if dim.Skipped != 1 {
		t.Errorf("Expected 1 skipped record, got %d", dim.Skipped)
	}
}

func TestBuildProductDim(t *testing.T) {
	records := []extract.RawRecord{
		record("A", "Yangon", "Food and beverages", date(2019, 1, 5)),
		record("A", "Yangon", "Health and beauty", date(2019, 1, 5)),
		record("A", "Yangon", "Food and beverages", date(2019, 1, 6)),
		record("A", "Yangon", "", date(2019, 1, 7)),
	}

	dim := BuildProductDim(records)
	if len(dim.Rows) != 2 {
		t.Fatalf("Expected 2 product rows, got %d", len(dim.Rows))
	}
	if dim.Skipped != 1 {
		t.Errorf("Expected 1 skipped record, got %d", dim.Skipped)
	}

	// First-occurrence order
	if dim.Rows[0].ProductLine != "Food and beverages" || dim.Rows[0].ID != 1 {
		t.Errorf("Unexpected first row: %+v", dim.Rows[0])
	}
	if dim.Rows[1].ProductLine != "Health and beauty" || dim.Rows[1].ID != 2 {
		t.Errorf("Unexpected second row: %+v", dim.Rows[1])
	}
}

func TestBuildBranchDim(t *testing.T) {
	records := []extract.RawRecord{
		record("C", "Naypyitaw", "Food and beverages", date(2019, 1, 5)),
		record("A", "Yangon", "Food and beverages", date(2019, 1, 5)),
		record("C", "Naypyitaw", "Health and beauty", date(2019, 1, 6)),
	}

	dim := BuildBranchDim(records)
	if len(dim.Rows) != 2 {
		t.Fatalf("Expected 2 branch rows, got %d", len(dim.Rows))
	}
	if dim.Rows[0].Branch != "C" || dim.Rows[0].City != "Naypyitaw" {
		t.Errorf("Unexpected first branch row: %+v", dim.Rows[0])
	}
	if id, ok := dim.Key("A"); !ok || id != 2 {
		t.Errorf("Expected key 2 for branch A, got (%d, %v)", id, ok)
	}
}

// Surrogate key assignment is first-occurrence order, so rebuilding from
// the same input ordering yields identical keys.
func TestDimensionDeterminism(t *testing.T) {
	records := []extract.RawRecord{
		record("B", "Mandalay", "Sports and travel", date(2019, 2, 2)),
		record("A", "Yangon", "Food and beverages", date(2019, 1, 5)),
		record("C", "Naypyitaw", "Sports and travel", date(2019, 2, 2)),
		record("B", "Mandalay", "Home and lifestyle", date(2019, 3, 1)),
	}

	first := BuildProductDim(records)
	second := BuildProductDim(records)

	if len(first.Rows) != len(second.Rows) {
		t.Fatalf("Row counts differ: %d vs %d", len(first.Rows), len(second.Rows))
	}
	for i := range first.Rows {
		if first.Rows[i] != second.Rows[i] {
			t.Errorf("Row %d differs: %+v vs %+v", i, first.Rows[i], second.Rows[i])
		}
	}
}
