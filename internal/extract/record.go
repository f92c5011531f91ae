//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package extract parses the supermarket sales CSV into typed records.
package extract

import "time"

// RawRecord is one transaction from the source file, field-coerced at the
// parse boundary. Records are immutable once read.
type RawRecord struct {
	InvoiceID    string
	Branch       string
	City         string
	CustomerType string
	Gender       string
	ProductLine  string
	UnitPrice    float64
	Quantity     int
	Tax          float64
	Total        float64
	Date         time.Time
	TimeOfDay    string
	Payment      string
	COGS         float64
	GrossMargin  float64
	GrossIncome  float64
	Rating       float64
}

// Header is the fixed column header of the source file, in source order.
var Header = []string{
	"Invoice ID",
	"Branch",
	"City",
	"Customer type",
	"Gender",
	"Product line",
	"Unit price",
	"Quantity",
	"Tax 5%",
	"Total",
	"Date",
	"Time",
	"Payment",
	"cogs",
	"gross margin percentage",
	"gross income",
	"Rating",
}

// Column indexes into a source row.
const (
	colInvoiceID = iota
	colBranch
	colCity
	colCustomerType
	colGender
	colProductLine
	colUnitPrice
	colQuantity
	colTax
	colTotal
	colDate
	colTime
	colPayment
	colCOGS
	colGrossMargin
	colGrossIncome
	colRating
	numColumns
)

// DateLayout is the source date format (M/D/YYYY, no zero padding).
const DateLayout = "1/2/2006"

// TimeLayout is the source time-of-day format.
const TimeLayout = "15:04"
