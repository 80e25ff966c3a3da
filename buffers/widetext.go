package buffers

import (
	"unsafe"

	"github.com/go-data-exporter/odbc"
	"github.com/go-data-exporter/odbc/handles"
	"golang.org/x/text/encoding/unicode"
	"xorkevin.dev/kerrors"
)

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// WideTextRowSet retrieves every column as wide (UTF-16) text, for drivers
// that only deliver lossless character data through wide char bindings. The
// layout matches TextRowSet with two-byte elements: per column, batchSize
// elements of maxLen+1 UTF-16 code units, and an indicator array counting
// bytes.
type WideTextRowSet struct {
	batchSize  int
	maxLens    []int
	data       [][]byte
	indicators [][]int64
	numRows    uint64
}

// NewWideTextRowSet allocates a buffer for batchSize rows, with maxStrLens
// giving the payload capacity of each column in UTF-16 code units, excluding
// the terminator.
func NewWideTextRowSet(batchSize int, maxStrLens []int) (*WideTextRowSet, error) {
	if batchSize <= 0 {
		return nil, kerrors.WithMsg(nil, "Batch size must be positive")
	}
	s := &WideTextRowSet{
		batchSize: batchSize,
		maxLens:   append([]int(nil), maxStrLens...),
	}
	for _, maxLen := range maxStrLens {
		if maxLen < 0 {
			return nil, kerrors.WithMsg(nil, "Column length must not be negative")
		}
		s.data = append(s.data, make([]byte, batchSize*(maxLen+1)*2))
		s.indicators = append(s.indicators, make([]int64, batchSize))
	}
	return s, nil
}

// BindToCursor registers the buffer's storage with the cursor, binding every
// column as wide char data.
func (s *WideTextRowSet) BindToCursor(c *odbc.Cursor) error {
	if err := c.SetRowBindingOrientation(0); err != nil {
		return err
	}
	if err := c.SetRowArraySize(uint32(s.batchSize)); err != nil {
		return err
	}
	if err := c.SetRowsFetchedTarget(&s.numRows); err != nil {
		return err
	}
	for i := range s.data {
		elemLen := int64((s.maxLens[i] + 1) * 2)
		if err := c.BindColumn(uint16(i+1), handles.CDataWChar, unsafe.Pointer(&s.data[i][0]), elemLen, &s.indicators[i][0]); err != nil {
			return err
		}
	}
	return nil
}

// NumCols reports the number of columns the buffer holds.
func (s *WideTextRowSet) NumCols() int {
	return len(s.data)
}

// NumRows reports the number of rows filled by the last fetch.
func (s *WideTextRowSet) NumRows() int {
	return int(s.numRows)
}

// At returns the raw UTF-16LE bytes of the value at row and zero-based
// column index, or nil for NULL. The slice aliases the buffer's storage and
// is overwritten by the next fetch.
func (s *WideTextRowSet) At(row, col int) []byte {
	indicator := s.indicators[col][row]
	if indicator == handles.NullData {
		return nil
	}
	maxBytes := s.maxLens[col] * 2
	n := int(indicator)
	if indicator < 0 || n > maxBytes {
		n = maxBytes
	}
	start := row * (s.maxLens[col] + 1) * 2
	return s.data[col][start : start+n]
}

// Value decodes the value at row and zero-based column index, with false for
// NULL.
func (s *WideTextRowSet) Value(row, col int) (string, bool, error) {
	raw := s.At(row, col)
	if raw == nil {
		return "", false, nil
	}
	decoded, err := utf16LE.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false, kerrors.WithMsg(err, "Failed to decode wide text value")
	}
	return string(decoded), true, nil
}
