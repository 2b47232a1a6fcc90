package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/shopspring/decimal"
)

// marshalLineItems marshals a sale's line items to JSON for the jsonb column.
// Nil line items produce nil (SQL NULL) rather than the JSON "null" string, so
// a document without a line_items field stays without one.
func marshalLineItems(lines []v1.LineItem) ([]byte, error) {
	if lines == nil {
		return nil, nil
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal line_items: %w", err)
	}
	return data, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanSaleRow scans a database row into a Sale.
// NULL columns map back to absent fields: nil Total, empty Timestamp, nil
// LineItems. Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanSaleRow(row scanner) (*v1.Sale, error) {
	var sale v1.Sale
	var customerName sql.NullString
	var linesJSON []byte
	var total sql.NullString
	var occurredAt sql.NullString

	err := row.Scan(
		&sale.ID,
		&customerName,
		&linesJSON,
		&total,
		&occurredAt,
		&sale.IngestSeq,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sale row: %w", err)
	}

	sale.CustomerName = customerName.String
	sale.Timestamp = occurredAt.String

	if total.Valid {
		d, err := decimal.NewFromString(total.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse total %q: %w", total.String, err)
		}
		sale.Total = &d
	}

	if len(linesJSON) > 0 {
		if err := json.Unmarshal(linesJSON, &sale.LineItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal line_items: %w", err)
		}
	}

	return &sale, nil
}

// nullString maps "" to SQL NULL. Absent document fields stay absent at rest.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
