package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{
	"seq", "kind", "from", "to", "owner", "operator", "spender",
	"token_id", "approved", "timestamp",
}

// WriteCSV writes records as CSV with a header row. Timestamps are
// RFC 3339 with nanoseconds so round-trips are lossless.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
		row := []string{
			strconv.FormatInt(r.Seq, 10),
			string(r.Kind),
			r.From,
			r.To,
			r.Owner,
			r.Operator,
			r.Spender,
			r.TokenID,
			strconv.FormatBool(r.Approved),
			r.Timestamp.UTC().Format(time.RFC3339Nano),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", r.Seq, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses records written by WriteCSV. Unknown kinds and malformed
// rows are rejected.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected header column %d: got %q, want %q", i, header[i], col)
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		seq, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse seq %q: %w", row[0], err)
		}
		approved, err := strconv.ParseBool(row[8])
		if err != nil {
			return nil, fmt.Errorf("parse approved %q: %w", row[8], err)
		}
		ts, err := time.Parse(time.RFC3339Nano, row[9])
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", row[9], err)
		}

		rec := Record{
			Seq:       seq,
			Kind:      Kind(row[1]),
			From:      row[2],
			To:        row[3],
			Owner:     row[4],
			Operator:  row[5],
			Spender:   row[6],
			TokenID:   row[7],
			Approved:  approved,
			Timestamp: ts,
		}
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
