package service

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Zakaria-Tajer/fx/internal/model"

	"github.com/shopspring/decimal"
)

// Required header columns.
const (
	columnDealID       = "dealId"
	columnFromCurrency = "fromCurrency"
	columnToCurrency   = "toCurrency"
	columnTimestamp    = "timestamp"
	columnAmount       = "amount"
)

var requiredColumns = []string{
	columnDealID,
	columnFromCurrency,
	columnToCurrency,
	columnTimestamp,
	columnAmount,
}

// timestampLayouts are the accepted local date-time forms. Fractional seconds
// are accepted after the seconds field without being named in the layout.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvParser implements Parser for comma-separated deal files.
type csvParser struct {
	location *time.Location
}

// NewCSVParser creates a parser that interprets timestamps in loc.
// A nil loc means time.Local.
func NewCSVParser(loc *time.Location) Parser {
	if loc == nil {
		loc = time.Local
	}
	return &csvParser{location: loc}
}

// Parse decodes every row before returning. Any structural problem fails the
// whole file with model.ErrInvalidCSV.
func (p *csvParser) Parse(r io.Reader) ([]model.Deal, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, model.ErrInvalidCSV.Wrap(errors.New("missing header row"))
		}
		return nil, model.ErrInvalidCSV.Wrap(err)
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, model.ErrInvalidCSV.Wrap(err)
	}

	var deals []model.Deal
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, model.ErrInvalidCSV.Wrap(err)
		}

		line, _ := reader.FieldPos(0)
		deal, err := p.decodeRow(record, columns)
		if err != nil {
			return nil, model.ErrInvalidCSV.Wrap(fmt.Errorf("line %d: %w", line, err))
		}
		deals = append(deals, deal)
	}

	return deals, nil
}

// indexColumns maps each required column to its position in the header.
func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		columns[name] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return columns, nil
}

func (p *csvParser) decodeRow(record []string, columns map[string]int) (model.Deal, error) {
	timestamp, err := p.parseTimestamp(strings.TrimSpace(record[columns[columnTimestamp]]))
	if err != nil {
		return model.Deal{}, err
	}

	amount, err := parseAmount(strings.TrimSpace(record[columns[columnAmount]]))
	if err != nil {
		return model.Deal{}, err
	}

	return model.NewDeal(
		record[columns[columnDealID]],
		strings.TrimSpace(record[columns[columnFromCurrency]]),
		strings.TrimSpace(record[columns[columnToCurrency]]),
		timestamp,
		amount,
	), nil
}

// parseTimestamp returns the zero time for an empty value.
func (p *csvParser) parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, value, p.location); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// parseAmount returns the zero decimal for an empty value.
func parseAmount(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Decimal{}, nil
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}

	return amount, nil
}
