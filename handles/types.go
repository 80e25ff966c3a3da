package handles

// CDataType identifies the C data type of an application buffer bound to a
// result set column. Values follow the ODBC SQL_C_* identifiers.
type CDataType int16

const (
	CDataChar    CDataType = 1
	CDataWChar   CDataType = -8
	CDataLong    CDataType = 4
	CDataShort   CDataType = 5
	CDataFloat   CDataType = 7
	CDataDouble  CDataType = 8
	CDataBit     CDataType = -7
	CDataSBigInt CDataType = -25
	CDataUBigInt CDataType = -27
	CDataBinary  CDataType = -2
)

// SQLDataType identifies the SQL type of a result set column as reported by
// the data source. Values follow the ODBC SQL_* identifiers.
type SQLDataType int16

const (
	SQLUnknownType SQLDataType = 0
	SQLChar        SQLDataType = 1
	SQLNumeric     SQLDataType = 2
	SQLDecimal     SQLDataType = 3
	SQLInteger     SQLDataType = 4
	SQLSmallInt    SQLDataType = 5
	SQLFloat       SQLDataType = 6
	SQLReal        SQLDataType = 7
	SQLDouble      SQLDataType = 8
	SQLVarchar     SQLDataType = 12
	SQLDate        SQLDataType = 91
	SQLTime        SQLDataType = 92
	SQLTimestamp   SQLDataType = 93
	SQLBigInt      SQLDataType = -5
	SQLTinyInt     SQLDataType = -6
	SQLBit         SQLDataType = -7
	SQLWChar       SQLDataType = -8
	SQLWVarchar    SQLDataType = -9
	SQLBinary      SQLDataType = -2
	SQLVarbinary   SQLDataType = -3
)

// Nullability reports whether a column may contain NULL values.
type Nullability int16

const (
	NoNulls            Nullability = 0
	Nullable           Nullability = 1
	NullabilityUnknown Nullability = 2
)

// Indicator values written by the driver alongside bound column data.
const (
	// NullData in an indicator buffer marks the value as NULL.
	NullData int64 = -1
	// NoTotal in an indicator buffer means the full length of the value
	// could not be determined.
	NoTotal int64 = -4
)
