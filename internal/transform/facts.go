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
	"fmt"

	"github.com/salescube/salescube/internal/extract"
	"github.com/salescube/salescube/internal/logging"
)

// FactRow is one row of fact_sales: the three dimension surrogate keys plus
// the numeric measures, copied verbatim from the raw record.
type FactRow struct {
	ID          int
	InvoiceID   string
	DateID      int
	ProductID   int
	BranchID    int
	Quantity    int
	UnitPrice   float64
	Tax         float64
	Total       float64
	GrossIncome float64
	Rating      float64
}

// ReferentialIntegrityError reports a fact record whose natural key is
// absent from its dimension. The dimension builders precompute from the
// same record set, so hitting this means the pipeline is miswired.
type ReferentialIntegrityError struct {
	Dimension string
	Key       string
}

// Error implements the error interface.
func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("fact references %s key %q not present in dimension", e.Dimension, e.Key)
}

// FactResult holds the fact rows plus the count of records skipped for a
// null natural key (mirroring the dimension builders' skip policy).
type FactResult struct {
	Rows    []FactRow
	Skipped int
}

// BuildFacts maps each raw record to a fact row, resolving natural keys
// through the dimension lookups. Output preserves input order and fact ids
// are dense, starting at 1. Records a dimension builder would have skipped
// (null natural key) are skipped here too; any other lookup miss is a
// *ReferentialIntegrityError.
func BuildFacts(records []extract.RawRecord, dates *DateDim, products *ProductDim, branches *BranchDim) (*FactResult, error) {
	res := &FactResult{Rows: make([]FactRow, 0, len(records))}

	for _, rec := range records {
		if rec.Date.IsZero() || rec.ProductLine == "" || rec.Branch == "" {
			res.Skipped++
			continue
		}

		dateID, ok := dates.Key(rec.Date)
		if !ok {
			return nil, &ReferentialIntegrityError{
				Dimension: "dim_date",
				Key:       rec.Date.Format(extract.DateLayout),
			}
		}
		productID, ok := products.Key(rec.ProductLine)
		if !ok {
			return nil, &ReferentialIntegrityError{Dimension: "dim_product", Key: rec.ProductLine}
		}
		branchID, ok := branches.Key(rec.Branch)
		if !ok {
			return nil, &ReferentialIntegrityError{Dimension: "dim_branch", Key: rec.Branch}
		}

		res.Rows = append(res.Rows, FactRow{
			ID:          len(res.Rows) + 1,
			InvoiceID:   rec.InvoiceID,
			DateID:      dateID,
			ProductID:   productID,
			BranchID:    branchID,
			Quantity:    rec.Quantity,
			UnitPrice:   rec.UnitPrice,
			Tax:         rec.Tax,
			Total:       rec.Total,
			GrossIncome: rec.GrossIncome,
			Rating:      rec.Rating,
		})
	}

	logging.Debug().
		Int("rows", len(res.Rows)).
		Int("skipped", res.Skipped).
		Msg("Fact table built")

	return res, nil
}

// Star bundles the full transformation output for loading.
type Star struct {
	Dates    *DateDim
	Products *ProductDim
	Branches *BranchDim
	Facts    *FactResult
}

// Build runs the three dimension builders and the fact builder over the
// raw records in a single linear pass each.
func Build(records []extract.RawRecord) (*Star, error) {
	dates := BuildDateDim(records)
	products := BuildProductDim(records)
	branches := BuildBranchDim(records)

	facts, err := BuildFacts(records, dates, products, branches)
	if err != nil {
		return nil, err
	}

	return &Star{
		Dates:    dates,
		Products: products,
		Branches: branches,
		Facts:    facts,
	}, nil
}
