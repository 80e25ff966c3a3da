package handles

import (
	"sort"
	"unsafe"

	"golang.org/x/text/encoding/unicode"
)

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// memBinding is one registered column buffer. The statement references the
// caller's memory by address only.
type memBinding struct {
	targetType CDataType
	value      unsafe.Pointer
	length     int64
	indicator  *int64
}

// MemoryStatement is an in-memory Statement serving rows from a slice. Each
// row is a []any whose elements are string, int64, or nil for NULL. It honors
// row array size, both binding orientations, and a rows-fetched target, which
// makes it suitable both for tests and as a reference for driver authors.
type MemoryStatement struct {
	desc []ColumnDescription
	rows [][]any

	pos         int
	arraySize   uint32
	rowStride   uint32
	rowsFetched *uint64
	bindings    map[uint16]memBinding

	closeCalls  int
	unbindCalls int
	fetchErr    error
	closeErr    error
	unbindErr   error
}

// NewMemoryStatement creates a statement over the given column descriptions
// and rows. The bookmark column is not part of desc; result columns are
// numbered starting at 1 in left-to-right order of desc.
func NewMemoryStatement(desc []ColumnDescription, rows [][]any) *MemoryStatement {
	return &MemoryStatement{
		desc:      desc,
		rows:      rows,
		arraySize: 1,
		bindings:  make(map[uint16]memBinding),
	}
}

// TextColumn describes a nullable varchar column with the given maximum
// length in characters.
func TextColumn(name string, size uint64) ColumnDescription {
	return ColumnDescription{
		Name:        name,
		DataType:    SQLVarchar,
		ColumnSize:  size,
		Nullability: Nullable,
	}
}

func diag(state, message string) error {
	return &DiagnosticRecord{State: state, Message: message}
}

func (s *MemoryStatement) CloseCursor() error {
	s.closeCalls++
	return s.closeErr
}

func (s *MemoryStatement) DescribeColumn(column uint16, desc *ColumnDescription) error {
	if column == 0 {
		return diag("07009", "bookmark column is not present in this result set")
	}
	if int(column) > len(s.desc) {
		return diag("07009", "invalid descriptor index")
	}
	*desc = s.desc[column-1]
	return nil
}

func (s *MemoryStatement) ColumnCount() (int16, error) {
	return int16(len(s.desc)), nil
}

func (s *MemoryStatement) Fetch() (bool, error) {
	if s.fetchErr != nil {
		err := s.fetchErr
		s.fetchErr = nil
		return false, err
	}
	// A binding past the column count is only detectable once rows are
	// requested, mirroring driver behavior.
	for column := range s.bindings {
		if column != 0 && int(column) > len(s.desc) {
			return false, diag("07009", "bound column exceeds column count")
		}
	}
	n := int(s.arraySize)
	if remaining := len(s.rows) - s.pos; n > remaining {
		n = remaining
	}
	if n <= 0 {
		if s.rowsFetched != nil {
			*s.rowsFetched = 0
		}
		return false, nil
	}
	for r := 0; r < n; r++ {
		row := s.rows[s.pos+r]
		for column, b := range s.bindings {
			if column == 0 {
				s.store(b, r, int64(s.pos+r))
				continue
			}
			s.store(b, r, row[column-1])
		}
	}
	s.pos += n
	if s.rowsFetched != nil {
		*s.rowsFetched = uint64(n)
	}
	return true, nil
}

// bufferAt resolves the data and indicator addresses for one row of a bound
// buffer, according to the active binding orientation.
func (s *MemoryStatement) bufferAt(b memBinding, row int) (unsafe.Pointer, *int64) {
	var valOff, indOff uintptr
	if s.rowStride == 0 {
		valOff = uintptr(row) * uintptr(b.length)
		indOff = uintptr(row) * unsafe.Sizeof(int64(0))
	} else {
		valOff = uintptr(row) * uintptr(s.rowStride)
		indOff = valOff
	}
	var value unsafe.Pointer
	if b.value != nil {
		value = unsafe.Add(b.value, valOff)
	}
	var indicator *int64
	if b.indicator != nil {
		indicator = (*int64)(unsafe.Add(unsafe.Pointer(b.indicator), indOff))
	}
	return value, indicator
}

func (s *MemoryStatement) store(b memBinding, row int, v any) {
	value, indicator := s.bufferAt(b, row)
	if v == nil {
		if indicator != nil {
			*indicator = NullData
		}
		return
	}
	switch b.targetType {
	case CDataChar:
		text, ok := v.(string)
		if !ok {
			return
		}
		storeText(value, indicator, b.length, []byte(text), 1)
	case CDataWChar:
		text, ok := v.(string)
		if !ok {
			return
		}
		encoded, err := utf16LE.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return
		}
		storeText(value, indicator, b.length, encoded, 2)
	case CDataSBigInt, CDataUBigInt:
		n, ok := v.(int64)
		if !ok {
			return
		}
		if value != nil && b.length >= 8 {
			*(*int64)(value) = n
		}
		if indicator != nil {
			*indicator = 8
		}
	}
}

// storeText copies raw into the bound buffer, truncating to leave room for a
// terminator of termSize bytes. The indicator always receives the full,
// untruncated byte length.
func storeText(value unsafe.Pointer, indicator *int64, length int64, raw []byte, termSize int) {
	if value != nil && length > 0 {
		dst := unsafe.Slice((*byte)(value), length)
		payload := len(dst) - termSize
		if payload < 0 {
			payload = 0
		}
		if payload > len(raw) {
			payload = len(raw)
		}
		n := copy(dst[:payload], raw)
		for i := 0; i < termSize && n+i < len(dst); i++ {
			dst[n+i] = 0
		}
	}
	if indicator != nil {
		*indicator = int64(len(raw))
	}
}

func (s *MemoryStatement) SetRowArraySize(size uint32) error {
	if size == 0 {
		return diag("HY024", "row array size must be positive")
	}
	s.arraySize = size
	return nil
}

func (s *MemoryStatement) SetRowsFetchedTarget(rowsFetched *uint64) error {
	s.rowsFetched = rowsFetched
	return nil
}

func (s *MemoryStatement) SetRowBindingOrientation(rowStride uint32) error {
	s.rowStride = rowStride
	return nil
}

func (s *MemoryStatement) UnbindColumns() error {
	s.unbindCalls++
	if s.unbindErr != nil {
		return s.unbindErr
	}
	for column := range s.bindings {
		if column != 0 {
			delete(s.bindings, column)
		}
	}
	return nil
}

func (s *MemoryStatement) BindColumn(column uint16, targetType CDataType, value unsafe.Pointer, length int64, indicator *int64) error {
	if value == nil && indicator == nil {
		delete(s.bindings, column)
		return nil
	}
	s.bindings[column] = memBinding{
		targetType: targetType,
		value:      value,
		length:     length,
		indicator:  indicator,
	}
	return nil
}

func (s *MemoryStatement) IsUnsignedColumn(column uint16) (bool, error) {
	desc, err := s.column(column)
	if err != nil {
		return false, err
	}
	switch desc.DataType {
	case SQLNumeric, SQLDecimal, SQLInteger, SQLSmallInt, SQLFloat, SQLReal, SQLDouble, SQLBigInt, SQLTinyInt:
		return false, nil
	}
	return true, nil
}

func (s *MemoryStatement) ColumnSQLType(column uint16) (SQLDataType, error) {
	desc, err := s.column(column)
	if err != nil {
		return SQLUnknownType, err
	}
	return desc.DataType, nil
}

func (s *MemoryStatement) ColumnOctetLength(column uint16) (int64, error) {
	desc, err := s.column(column)
	if err != nil {
		return 0, err
	}
	switch desc.DataType {
	case SQLWChar, SQLWVarchar:
		return int64(desc.ColumnSize) * 2, nil
	case SQLSmallInt:
		return 2, nil
	case SQLInteger, SQLReal:
		return 4, nil
	case SQLBigInt, SQLDouble, SQLFloat:
		return 8, nil
	case SQLTinyInt, SQLBit:
		return 1, nil
	}
	return int64(desc.ColumnSize), nil
}

func (s *MemoryStatement) ColumnDisplaySize(column uint16) (int64, error) {
	desc, err := s.column(column)
	if err != nil {
		return 0, err
	}
	switch desc.DataType {
	case SQLSmallInt:
		return 6, nil
	case SQLInteger:
		return 11, nil
	case SQLBigInt:
		return 20, nil
	case SQLTinyInt:
		return 4, nil
	case SQLBit:
		return 1, nil
	}
	return int64(desc.ColumnSize), nil
}

func (s *MemoryStatement) column(column uint16) (*ColumnDescription, error) {
	if column == 0 || int(column) > len(s.desc) {
		return nil, diag("07009", "invalid descriptor index")
	}
	return &s.desc[column-1], nil
}

// FailNextFetch makes the next Fetch return err instead of rows.
func (s *MemoryStatement) FailNextFetch(err error) {
	s.fetchErr = err
}

// FailCloseCursor makes every CloseCursor call return err.
func (s *MemoryStatement) FailCloseCursor(err error) {
	s.closeErr = err
}

// FailUnbind makes every UnbindColumns call return err.
func (s *MemoryStatement) FailUnbind(err error) {
	s.unbindErr = err
}

// CloseCalls reports how many times CloseCursor has been called.
func (s *MemoryStatement) CloseCalls() int {
	return s.closeCalls
}

// UnbindCalls reports how many times UnbindColumns has been called.
func (s *MemoryStatement) UnbindCalls() int {
	return s.unbindCalls
}

// BoundColumns reports the currently bound column numbers in ascending order.
func (s *MemoryStatement) BoundColumns() []uint16 {
	columns := make([]uint16, 0, len(s.bindings))
	for column := range s.bindings {
		columns = append(columns, column)
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i] < columns[j] })
	return columns
}
