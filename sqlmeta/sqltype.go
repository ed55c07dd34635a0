package sqlmeta

import "strings"

// MapKind converts a SQL data type string to its ColumnKind. The input is
// case-insensitive; size specifiers like (10,2) or (255) are stripped
// before matching, so both DATA_TYPE and COLUMN_TYPE forms work.
func MapKind(sqlType string) ColumnKind {
	if idx := strings.Index(sqlType, "("); idx != -1 {
		sqlType = sqlType[:idx]
	}
	switch strings.ToUpper(strings.TrimSpace(sqlType)) {
	case "CHAR", "VARCHAR", "NCHAR", "NVARCHAR", "UUID":
		return KindString
	case "TINYTEXT", "TEXT", "MEDIUMTEXT", "LONGTEXT", "CLOB":
		return KindText
	case "JSON", "JSONB":
		return KindJSON
	case "DATE":
		return KindDate
	case "DATETIME", "TIMESTAMP", "TIMESTAMPTZ":
		return KindDateTime
	case "TIME":
		return KindTime
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT", "SERIAL", "BIGSERIAL", "YEAR":
		return KindInt
	case "FLOAT", "DOUBLE", "REAL", "DOUBLE PRECISION":
		return KindFloat
	case "DECIMAL", "NUMERIC":
		return KindDecimal
	case "BOOL", "BOOLEAN", "BIT":
		return KindBoolean
	case "ENUM":
		return KindEnum
	default:
		return KindUnknown
	}
}
