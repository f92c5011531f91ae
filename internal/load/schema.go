//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package load persists the star schema into PostgreSQL: it establishes
// the four tables and bulk-inserts the dimension and fact rows.
package load

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema SQL for the supermarket sales star schema. The store is rebuilt
// from scratch each run, so creation always starts from a clean slate.
const createSchemaSQL = `
-- Date Dimension
CREATE TABLE dim_date (
    date_id  INTEGER PRIMARY KEY,
    date     DATE NOT NULL UNIQUE,
    year     INTEGER NOT NULL,
    month    INTEGER NOT NULL,
    day      INTEGER NOT NULL,
    weekday  VARCHAR(9) NOT NULL
);

-- Product Dimension
CREATE TABLE dim_product (
    product_id   INTEGER PRIMARY KEY,
    product_line TEXT NOT NULL UNIQUE
);

-- Branch Dimension
CREATE TABLE dim_branch (
    branch_id INTEGER PRIMARY KEY,
    branch    TEXT NOT NULL UNIQUE,
    city      TEXT NOT NULL
);

-- Sales Fact Table
CREATE TABLE fact_sales (
    fact_id      INTEGER PRIMARY KEY,
    invoice_id   TEXT NOT NULL,
    date_id      INTEGER NOT NULL REFERENCES dim_date (date_id),
    product_id   INTEGER NOT NULL REFERENCES dim_product (product_id),
    branch_id    INTEGER NOT NULL REFERENCES dim_branch (branch_id),
    quantity     INTEGER NOT NULL,
    unit_price   NUMERIC(10,2) NOT NULL,
    tax          NUMERIC(10,4) NOT NULL,
    total        NUMERIC(12,4) NOT NULL,
    gross_income NUMERIC(10,4) NOT NULL,
    rating       NUMERIC(3,1) NOT NULL
);

CREATE INDEX idx_fact_sales_date ON fact_sales (date_id);
CREATE INDEX idx_fact_sales_product ON fact_sales (product_id);
CREATE INDEX idx_fact_sales_branch ON fact_sales (branch_id);
`

// Drop SQL removes the star schema tables. Fact first, it holds the
// foreign keys.
const dropSchemaSQL = `
DROP TABLE IF EXISTS fact_sales;
DROP TABLE IF EXISTS dim_date;
DROP TABLE IF EXISTS dim_product;
DROP TABLE IF EXISTS dim_branch;
`

// CreateSchema drops any previous run's tables and creates fresh ones.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if err := DropSchema(ctx, pool); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// DropSchema drops the star schema tables.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, dropSchemaSQL); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}
