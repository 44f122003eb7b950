// Package export writes catalog items to flat files.
// CSV carries one row per item with a header of field names; JSONL carries
// one JSON object per line.
package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Format names an export encoding.
type Format string

// Supported formats.
const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

// ErrUnknownFormat is returned for a format name other than csv or jsonl.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat returns the Format named s. The empty string selects CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSONL:
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatJSONL {
		return "application/x-ndjson"
	}
	return "text/csv"
}

// Write encodes items to w in the given format.
func Write(w io.Writer, format Format, items []types.Item) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, items)
	case FormatJSONL:
		return WriteJSONL(w, items)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Header returns the CSV header: id followed by the field names in Item
// order.
func Header() []string {
	header := []string{"id"}
	for _, f := range types.Fields() {
		header = append(header, f.Name)
	}
	return header
}

// Record returns the CSV cells of item in Header order. Enums and dates
// are written as text and unset attributes as empty cells.
func Record(item types.Item) []string {
	rec := []string{strconv.FormatInt(item.ID, 10)}
	for _, f := range types.Fields() {
		rec = append(rec, formatCell(f.Get(&item)))
	}
	return rec
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// WriteCSV writes a header row and one row per item.
func WriteCSV(w io.Writer, items []types.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, item := range items {
		if err := cw.Write(Record(item)); err != nil {
			return fmt.Errorf("writing item %d: %w", item.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// WriteJSONL writes one JSON object per item, newline terminated.
func WriteJSONL(w io.Writer, items []types.Item) error {
	bw := bufio.NewWriter(w)
	for _, item := range items {
		rec, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encoding item %d: %w", item.ID, err)
		}
		if _, err := bw.Write(rec); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	return nil
}
