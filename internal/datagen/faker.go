//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package datagen generates synthetic supermarket sales data in the exact
// layout of the upstream Kaggle dataset. It backs the sample subcommand and
// the test fixtures.
package datagen

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Reference data mirroring the value domains of the source dataset.
var (
	productLines = []string{
		"Health and beauty",
		"Electronic accessories",
		"Home and lifestyle",
		"Sports and travel",
		"Food and beverages",
		"Fashion accessories",
	}

	branchCities = map[string]string{
		"A": "Yangon",
		"B": "Mandalay",
		"C": "Naypyitaw",
	}

	customerTypes  = []string{"Member", "Normal"}
	genders        = []string{"Male", "Female"}
	paymentMethods = []string{"Ewallet", "Cash", "Credit card"}
)

// taxRate is the flat sales tax of the source dataset.
const taxRate = 0.05

// Faker provides fake supermarket sales data generation using gofakeit.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return &Faker{
		faker: gofakeit.New(uint64(time.Now().UnixNano())),
	}
}

// NewFakerWithSeed creates a new Faker with a specific seed for
// reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// InvoiceID generates an invoice id in the source "XXX-XX-XXXX" shape.
func (f *Faker) InvoiceID() string {
	return fmt.Sprintf("%03d-%02d-%04d",
		f.faker.Number(100, 999),
		f.faker.Number(10, 99),
		f.faker.Number(1000, 9999))
}

// Branch generates a branch code with its city.
func (f *Faker) Branch() (code, city string) {
	code = f.faker.RandomString([]string{"A", "B", "C"})
	return code, branchCities[code]
}

// ProductLine generates a product line.
func (f *Faker) ProductLine() string {
	return f.faker.RandomString(productLines)
}

// CustomerType generates a customer type.
func (f *Faker) CustomerType() string {
	return f.faker.RandomString(customerTypes)
}

// Gender generates a gender value.
func (f *Faker) Gender() string {
	return f.faker.RandomString(genders)
}

// Payment generates a payment method.
func (f *Faker) Payment() string {
	return f.faker.RandomString(paymentMethods)
}

// UnitPrice generates a unit price in the dataset's 10.00-99.99 range.
func (f *Faker) UnitPrice() float64 {
	return f.faker.Float64Range(10, 99.99)
}

// Quantity generates a purchase quantity.
func (f *Faker) Quantity() int {
	return f.faker.Number(1, 10)
}

// Rating generates a customer rating.
func (f *Faker) Rating() float64 {
	return f.faker.Float64Range(4, 10)
}

// Date generates a transaction date within the dataset's quarter.
func (f *Faker) Date() time.Time {
	start := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2019, 3, 30, 0, 0, 0, 0, time.UTC)
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, f.faker.Number(0, days))
}

// TimeOfDay generates a transaction time within store hours.
func (f *Faker) TimeOfDay() string {
	return fmt.Sprintf("%02d:%02d", f.faker.Number(10, 20), f.faker.Number(0, 59))
}
