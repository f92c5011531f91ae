//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/salescube/salescube/internal/logging"
)

// ErrNotFound is returned when the input file does not exist.
var ErrNotFound = errors.New("input file not found")

// ParseError describes a malformed row or field, or an unusable input file.
type ParseError struct {
	// Line is the 1-based line number in the source file (0 when the
	// error concerns the file as a whole).
	Line int

	// Field is the column name of the offending field, if known.
	Field string

	// Msg is a human-readable description.
	Msg string

	// Err is the underlying coercion error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Field != "":
		return fmt.Sprintf("line %d: field %q: %s", e.Line, e.Field, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	default:
		return e.Msg
	}
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// Options configures reader behavior. All fields are optional; sensible
// defaults are applied when a field is zero.
type Options struct {
	// MaxSkipRatio is the fraction of malformed rows tolerated before the
	// file is rejected as unusable. Zero means the default of 0.5.
	MaxSkipRatio float64
}

// Reader parses the supermarket sales CSV. Malformed rows are soft-skipped
// and counted rather than aborting the run; the whole file is rejected only
// when the skip ratio says the input is unusable.
type Reader struct {
	opt Options
}

// NewReader constructs a Reader with the provided Options.
func NewReader(opt Options) *Reader {
	if opt.MaxSkipRatio == 0 {
		opt.MaxSkipRatio = 0.5
	}
	return &Reader{opt: opt}
}

// Result holds the parsed records plus the count of skipped malformed rows.
type Result struct {
	Records []RawRecord
	Skipped int
}

// ReadFile parses the CSV at path. It returns ErrNotFound when the path
// does not exist and a *ParseError when the file is unusable.
func (r *Reader) ReadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	return r.Read(f)
}

// Read parses CSV content from src.
func (r *Reader) Read(src io.Reader) (*Result, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1 // width enforced per row so bad rows soft-fail

	header, err := cr.Read()
	if err != nil {
		return nil, &ParseError{Line: 1, Msg: "missing header row", Err: err}
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	res := &Result{}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logging.Warn().Int("line", line).Err(err).Msg("Skipping unreadable row")
			res.Skipped++
			continue
		}

		rec, perr := parseRow(row, line)
		if perr != nil {
			logging.Warn().
				Int("line", perr.Line).
				Str("field", perr.Field).
				Msg("Skipping malformed row: " + perr.Msg)
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, rec)
	}

	total := len(res.Records) + res.Skipped
	if total > 0 {
		ratio := float64(res.Skipped) / float64(total)
		if ratio > r.opt.MaxSkipRatio {
			return nil, &ParseError{
				Msg: fmt.Sprintf("input unusable: %d of %d rows malformed (ratio %.2f exceeds %.2f)",
					res.Skipped, total, ratio, r.opt.MaxSkipRatio),
			}
		}
	}

	if res.Skipped > 0 {
		logging.Warn().
			Int("skipped", res.Skipped).
			Int("parsed", len(res.Records)).
			Msg("Some rows were skipped")
	}

	return res, nil
}

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// checkHeader verifies the fixed source header, tolerating a UTF-8 BOM and
// surrounding whitespace.
func checkHeader(got []string) error {
	if len(got) != numColumns {
		return &ParseError{
			Line: 1,
			Msg:  fmt.Sprintf("expected %d header columns, got %d", numColumns, len(got)),
		}
	}
	for i, want := range Header {
		name := strings.TrimSpace(strings.TrimPrefix(got[i], utf8BOM))
		if !strings.EqualFold(name, want) {
			return &ParseError{
				Line:  1,
				Field: want,
				Msg:   fmt.Sprintf("unexpected header column %q", got[i]),
			}
		}
	}
	return nil
}

// parseRow coerces one CSV row into a RawRecord.
func parseRow(row []string, line int) (RawRecord, *ParseError) {
	var rec RawRecord

	if len(row) != numColumns {
		return rec, &ParseError{
			Line: line,
			Msg:  fmt.Sprintf("expected %d fields, got %d", numColumns, len(row)),
		}
	}

	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	// Required text fields: the dimension natural keys and the invoice id.
	for _, req := range []struct {
		col  int
		name string
	}{
		{colInvoiceID, "Invoice ID"},
		{colBranch, "Branch"},
		{colCity, "City"},
		{colProductLine, "Product line"},
	} {
		if row[req.col] == "" {
			return rec, &ParseError{Line: line, Field: req.name, Msg: "missing required value"}
		}
	}

	rec.InvoiceID = row[colInvoiceID]
	rec.Branch = row[colBranch]
	rec.City = row[colCity]
	rec.CustomerType = row[colCustomerType]
	rec.Gender = row[colGender]
	rec.ProductLine = row[colProductLine]
	rec.Payment = row[colPayment]

	var perr *ParseError
	rec.UnitPrice, perr = parseFloat(row[colUnitPrice], line, "Unit price")
	if perr != nil {
		return rec, perr
	}
	rec.Tax, perr = parseFloat(row[colTax], line, "Tax 5%")
	if perr != nil {
		return rec, perr
	}
	rec.Total, perr = parseFloat(row[colTotal], line, "Total")
	if perr != nil {
		return rec, perr
	}
	rec.COGS, perr = parseFloat(row[colCOGS], line, "cogs")
	if perr != nil {
		return rec, perr
	}
	rec.GrossMargin, perr = parseFloat(row[colGrossMargin], line, "gross margin percentage")
	if perr != nil {
		return rec, perr
	}
	rec.GrossIncome, perr = parseFloat(row[colGrossIncome], line, "gross income")
	if perr != nil {
		return rec, perr
	}
	rec.Rating, perr = parseFloat(row[colRating], line, "Rating")
	if perr != nil {
		return rec, perr
	}

	qty, err := strconv.Atoi(row[colQuantity])
	if err != nil {
		return rec, &ParseError{Line: line, Field: "Quantity", Msg: "not an integer", Err: err}
	}
	if qty < 0 {
		return rec, &ParseError{Line: line, Field: "Quantity", Msg: "negative quantity"}
	}
	rec.Quantity = qty

	date, err := time.ParseInLocation(DateLayout, row[colDate], time.UTC)
	if err != nil {
		return rec, &ParseError{Line: line, Field: "Date", Msg: "not a valid date", Err: err}
	}
	rec.Date = date

	if _, err := time.Parse(TimeLayout, row[colTime]); err != nil {
		return rec, &ParseError{Line: line, Field: "Time", Msg: "not a valid time", Err: err}
	}
	rec.TimeOfDay = row[colTime]

	return rec, nil
}

// parseFloat coerces a monetary or numeric field.
func parseFloat(s string, line int, field string) (float64, *ParseError) {
	if s == "" {
		return 0, &ParseError{Line: line, Field: field, Msg: "missing required value"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Line: line, Field: field, Msg: "not a number", Err: err}
	}
	return v, nil
}
