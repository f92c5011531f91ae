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
	"time"

	"github.com/salescube/salescube/internal/extract"
	"github.com/salescube/salescube/internal/logging"
)

// DateRow is one row of dim_date. Natural key: the calendar date.
type DateRow struct {
	ID      int
	Date    time.Time
	Year    int
	Month   int
	Day     int
	Weekday string
}

// ProductRow is one row of dim_product. Natural key: the product line.
type ProductRow struct {
	ID          int
	ProductLine string
}

// BranchRow is one row of dim_branch. Natural key: the branch code.
type BranchRow struct {
	ID     int
	Branch string
	City   string
}

// DateDim is the date dimension: one row per distinct calendar date.
type DateDim struct {
	Rows    []DateRow
	Skipped int

	keys *KeyMap[time.Time]
}

// BuildDateDim derives the date dimension from the raw records. Records
// with a zero date are skipped and counted, never fatal.
func BuildDateDim(records []extract.RawRecord) *DateDim {
	d := &DateDim{keys: NewKeyMap[time.Time]()}
	for _, rec := range records {
		if rec.Date.IsZero() {
			d.Skipped++
			continue
		}
		id, created := d.keys.GetOrAssign(rec.Date)
		if created {
			d.Rows = append(d.Rows, DateRow{
				ID:      id,
				Date:    rec.Date,
				Year:    rec.Date.Year(),
				Month:   int(rec.Date.Month()),
				Day:     rec.Date.Day(),
				Weekday: rec.Date.Weekday().String(),
			})
		}
	}
	logDimBuilt("dim_date", len(d.Rows), d.Skipped)
	return d
}

// Key returns the surrogate key for a calendar date.
func (d *DateDim) Key(date time.Time) (int, bool) {
	return d.keys.Lookup(date)
}

// ProductDim is the product dimension: one row per distinct product line.
type ProductDim struct {
	Rows    []ProductRow
	Skipped int

	keys *KeyMap[string]
}

// BuildProductDim derives the product dimension from the raw records.
// Records with an empty product line are skipped and counted.
func BuildProductDim(records []extract.RawRecord) *ProductDim {
	p := &ProductDim{keys: NewKeyMap[string]()}
	for _, rec := range records {
		if rec.ProductLine == "" {
			p.Skipped++
			continue
		}
		id, created := p.keys.GetOrAssign(rec.ProductLine)
		if created {
			p.Rows = append(p.Rows, ProductRow{ID: id, ProductLine: rec.ProductLine})
		}
	}
	logDimBuilt("dim_product", len(p.Rows), p.Skipped)
	return p
}

// Key returns the surrogate key for a product line.
func (p *ProductDim) Key(productLine string) (int, bool) {
	return p.keys.Lookup(productLine)
}

// BranchDim is the branch dimension: one row per distinct branch code.
// The dataset carries exactly one city per branch, so the city rides along
// as an attribute of the first occurrence.
type BranchDim struct {
	Rows    []BranchRow
	Skipped int

	keys *KeyMap[string]
}

// BuildBranchDim derives the branch dimension from the raw records.
// Records with an empty branch code are skipped and counted.
func BuildBranchDim(records []extract.RawRecord) *BranchDim {
	b := &BranchDim{keys: NewKeyMap[string]()}
	for _, rec := range records {
		if rec.Branch == "" {
			b.Skipped++
			continue
		}
		id, created := b.keys.GetOrAssign(rec.Branch)
		if created {
			b.Rows = append(b.Rows, BranchRow{ID: id, Branch: rec.Branch, City: rec.City})
		}
	}
	logDimBuilt("dim_branch", len(b.Rows), b.Skipped)
	return b
}

// Key returns the surrogate key for a branch code.
func (b *BranchDim) Key(branch string) (int, bool) {
	return b.keys.Lookup(branch)
}

func logDimBuilt(table string, rows, skipped int) {
	evt := logging.Debug().Str("table", table).Int("rows", rows)
	if skipped > 0 {
		evt = logging.Warn().Str("table", table).Int("rows", rows).Int("skipped", skipped)
	}
	evt.Msg("Dimension built")
}
