package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Writes a deal import file that exercises every outcome:
// valid rows, an in-file duplicate and one row per validation rule.
func main() {
	out := flag.String("out", "data/samples/deals.csv", "output CSV path")
	rows := flag.Int("rows", 20, "number of valid rows to generate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	records := sampleRecords(rand.New(rand.NewSource(*seed)), *rows)

	if err := writeCSV(*out, records); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d data rows\n", *out, len(records)-1)
	fmt.Println("\nExpected outcome when imported into an empty store:")
	fmt.Printf("  saved:      %d\n", *rows)
	fmt.Println("  duplicates: 1 (repeated first row)")
	fmt.Println("  invalid:    6 (one per validation rule, two for currencies)")
}

var currencies = []string{"USD", "EUR", "GBP", "JPY", "CHF", "MAD", "CAD", "AUD"}

func sampleRecords(rng *rand.Rand, n int) [][]string {
	records := [][]string{{"dealId", "fromCurrency", "toCurrency", "timestamp", "amount"}}

	base := time.Now().Add(-30 * 24 * time.Hour).Truncate(time.Second)
	for i := 0; i < n; i++ {
		from := currencies[rng.Intn(len(currencies))]
		to := currencies[rng.Intn(len(currencies))]
		ts := base.Add(time.Duration(rng.Int63n(int64(29 * 24 * time.Hour))))
		amount := decimal.New(rng.Int63n(10_000_000)+1, -2)

		records = append(records, []string{
			"FX-" + uuid.NewString()[:8],
			from,
			to,
			ts.Format("2006-01-02T15:04:05"),
			amount.StringFixed(2),
		})
	}

	future := time.Now().Add(48 * time.Hour).Format("2006-01-02T15:04:05")
	past := base.Format("2006-01-02T15:04:05")

	if n > 0 {
		records = append(records, records[1])
	}

	return append(records,
		[]string{"", "USD", "EUR", past, "10.00"},
		[]string{"BAD-FROM", "XYZ", "EUR", past, "10.00"},
		[]string{"BAD-TO", "USD", "EURO", past, "10.00"},
		[]string{"BAD-AMOUNT", "USD", "EUR", past, "0"},
		[]string{"BAD-TIME", "USD", "EUR", future, "10.00"},
		[]string{"NO-TIME", "USD", "EUR", "", "10.00"},
	)
}

func writeCSV(path string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	return nil
}
