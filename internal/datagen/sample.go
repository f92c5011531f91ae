//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/salescube/salescube/internal/extract"
)

// grossMarginPct is constant across the source dataset: gross income is
// exactly the 5% tax, so margin = tax / total.
const grossMarginPct = "4.761904762"

// WriteSampleCSV writes rows synthetic transactions in the source CSV
// layout, header included. Derived measures (tax, total, cogs, gross
// income) are computed consistently so the output survives the full
// pipeline and its invariant checks.
func (f *Faker) WriteSampleCSV(w io.Writer, rows int) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(extract.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := 0; i < rows; i++ {
		branch, city := f.Branch()
		// Round the price to cents before deriving measures; otherwise the
		// formatted price and the derived tax/total drift apart.
		unitPrice := math.Round(f.UnitPrice()*100) / 100
		qty := f.Quantity()

		subtotal := unitPrice * float64(qty)
		tax := subtotal * taxRate
		total := subtotal + tax

		record := []string{
			f.InvoiceID(),
			branch,
			city,
			f.CustomerType(),
			f.Gender(),
			f.ProductLine(),
			strconv.FormatFloat(unitPrice, 'f', 2, 64),
			strconv.Itoa(qty),
			strconv.FormatFloat(tax, 'f', 4, 64),
			strconv.FormatFloat(total, 'f', 4, 64),
			f.Date().Format(extract.DateLayout),
			f.TimeOfDay(),
			f.Payment(),
			strconv.FormatFloat(subtotal, 'f', 2, 64),
			grossMarginPct,
			strconv.FormatFloat(tax, 'f', 4, 64),
			strconv.FormatFloat(f.Rating(), 'f', 1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush sample csv: %w", err)
	}
	return nil
}
