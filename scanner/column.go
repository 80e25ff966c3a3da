package scanner

import "github.com/go-data-exporter/odbc/handles"

type Column interface {
	Name() string
	Length() (length int64, ok bool)
	DecimalSize() (precision, scale int64, ok bool)
	Nullable() (nullable, ok bool)
	Unsigned() (unsigned, ok bool)
	DatabaseTypeName() string
}

// cursorColumn implements the Column interface from a described column plus
// the cursor's per-column metadata queries.
type cursorColumn struct {
	desc     handles.ColumnDescription
	octetLen int64
	unsigned bool
}

func (c *cursorColumn) Name() string {
	return c.desc.Name
}

func (c *cursorColumn) Length() (int64, bool) {
	if c.octetLen <= 0 {
		return 0, false
	}
	return c.octetLen, true
}

func (c *cursorColumn) DecimalSize() (precision, scale int64, ok bool) {
	switch c.desc.DataType {
	case handles.SQLNumeric, handles.SQLDecimal:
		return int64(c.desc.ColumnSize), int64(c.desc.DecimalDigits), true
	}
	return 0, 0, false
}

func (c *cursorColumn) Nullable() (nullable, ok bool) {
	if c.desc.Nullability == handles.NullabilityUnknown {
		return false, false
	}
	return c.desc.Nullability == handles.Nullable, true
}

func (c *cursorColumn) Unsigned() (unsigned, ok bool) {
	return c.unsigned, true
}

func (c *cursorColumn) DatabaseTypeName() string {
	return typeName(c.desc.DataType)
}

func typeName(t handles.SQLDataType) string {
	switch t {
	case handles.SQLChar:
		return "CHAR"
	case handles.SQLVarchar:
		return "VARCHAR"
	case handles.SQLWChar:
		return "WCHAR"
	case handles.SQLWVarchar:
		return "WVARCHAR"
	case handles.SQLNumeric:
		return "NUMERIC"
	case handles.SQLDecimal:
		return "DECIMAL"
	case handles.SQLInteger:
		return "INTEGER"
	case handles.SQLSmallInt:
		return "SMALLINT"
	case handles.SQLTinyInt:
		return "TINYINT"
	case handles.SQLBigInt:
		return "BIGINT"
	case handles.SQLFloat:
		return "FLOAT"
	case handles.SQLReal:
		return "REAL"
	case handles.SQLDouble:
		return "DOUBLE"
	case handles.SQLBit:
		return "BIT"
	case handles.SQLBinary:
		return "BINARY"
	case handles.SQLVarbinary:
		return "VARBINARY"
	case handles.SQLDate:
		return "DATE"
	case handles.SQLTime:
		return "TIME"
	case handles.SQLTimestamp:
		return "TIMESTAMP"
	}
	return "UNKNOWN"
}
