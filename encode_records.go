package finkeeper

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/finkeeper/finkeeper/date"
	"github.com/shopspring/decimal"
)

// Data file layout
//
// The data file is a plain sequence of records without header, count or
// version. A record is three fields in this order: date ("2024-03-07"),
// reason, amount ("-123.45"). Each field is UTF-8 text prefixed by its length
// in bytes as a big-endian uint16.

var (
	// ErrFieldTooLong is returned when a field does not fit the 16 bits length prefix.
	ErrFieldTooLong = errors.New("field longer than 65535 bytes")
	// ErrMalformedRecord is returned when a complete record holds an unparsable date or amount.
	ErrMalformedRecord = errors.New("malformed record")
)

// EncodeRecords writes all records to w.
func EncodeRecords(w io.Writer, rs *Records) error {
	bw := bufio.NewWriter(w)
	for _, r := range rs.All() {
		if err := EncodeRecord(bw, r); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// EncodeRecord writes a single record to w.
func EncodeRecord(w io.Writer, r Record) error {
	for _, field := range []string{r.date.String(), r.reason, amountText(r.amount)} {
		if err := writeField(w, field); err != nil {
			return fmt.Errorf("failed to encode record %v: %w", r, err)
		}
	}
	return nil
}

// amountText formats d keeping its scale, so that 1000.00 is not saved as 1000.
func amountText(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func writeField(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return ErrFieldTooLong
	}
	var prefix [2]byte
	binary.BigEndian.PutUint16(prefix[:], uint16(len(s)))
	if _, err := w.Write(prefix[:]); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// DecodeRecords reads records from r until the end of the stream.
//
// A record cut short by the end of the stream is dropped without error: the
// records read so far are returned. A complete record that cannot be parsed
// stops the decoding, the records before it are returned along with an error
// wrapping ErrMalformedRecord.
func DecodeRecords(r io.Reader) (*Records, error) {
	rs := NewRecords()
	br := bufio.NewReader(r)
	for {
		rec, err := decodeRecord(br)
		switch {
		case err == nil:
			rs.Add(rec)
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return rs, nil
		default:
			return rs, fmt.Errorf("record #%d: %w", rs.Len()+1, err)
		}
	}
}

func decodeRecord(r io.Reader) (Record, error) {
	var fields [3]string
	for i := range fields {
		s, err := readField(r)
		if err != nil {
			if i > 0 && errors.Is(err, io.EOF) {
				// the stream ended inside the record.
				err = io.ErrUnexpectedEOF
			}
			return Record{}, err
		}
		fields[i] = s
	}

	on, err := date.ParseISO(fields[0])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	amount, err := decimal.NewFromString(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return NewRecord(on, fields[1], amount), nil
}

func readField(r io.Reader) (string, error) {
	var prefix [2]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return "", err
	}
	buf := make([]byte, binary.BigEndian.Uint16(prefix[:]))
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	return string(buf), nil
}
