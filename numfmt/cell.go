package numfmt

import (
	"github.com/TsubasaBE/go-cellfmt/styles"
)

// CellType is the stored type of a cell.
type CellType int

// Cell types.
const (
	CellBlank CellType = iota
	CellNumeric
	CellString
	CellBoolean
	CellFormula
	CellError
)

func (t CellType) String() string {
	switch t {
	case CellBlank:
		return "Blank"
	case CellNumeric:
		return "Numeric"
	case CellString:
		return "String"
	case CellBoolean:
		return "Boolean"
	case CellFormula:
		return "Formula"
	case CellError:
		return "Error"
	}
	return "Unknown"
}

// ErrorCode is a cell error value.
type ErrorCode uint8

// Error codes, numbered as in the BIFF error records.
const (
	ErrorNull  ErrorCode = 0x00
	ErrorDiv0  ErrorCode = 0x07
	ErrorValue ErrorCode = 0x0f
	ErrorRef   ErrorCode = 0x17
	ErrorName  ErrorCode = 0x1d
	ErrorNum   ErrorCode = 0x24
	ErrorNA    ErrorCode = 0x2a

	ErrorGettingData ErrorCode = 0x2b
)

var errorLiterals = map[ErrorCode]string{
	ErrorNull:  "#NULL!",
	ErrorDiv0:  "#DIV/0!",
	ErrorValue: "#VALUE!",
	ErrorRef:   "#REF!",
	ErrorName:  "#NAME?",
	ErrorNum:   "#NUM!",
	ErrorNA:    "#N/A",

	ErrorGettingData: "#GETTING_DATA",
}

// String returns the literal a spreadsheet shows for the error, or
// "#ERROR!" for unknown codes.
func (e ErrorCode) String() string {
	if s, ok := errorLiterals[e]; ok {
		return s
	}
	return "#ERROR!"
}

// ParseErrorCode maps an error literal such as "#DIV/0!" to its code.
func ParseErrorCode(s string) (ErrorCode, bool) {
	for code, lit := range errorLiterals {
		if lit == s {
			return code, true
		}
	}
	return 0, false
}

// Cell is the view of a spreadsheet cell the formatter needs.  Only the
// accessor matching Type is consulted.
type Cell interface {
	Type() CellType
	Number() float64
	// Text returns the string value, or the formula text of a formula
	// cell.
	Text() string
	Bool() bool
	ErrorCode() ErrorCode
	// NumFmt returns the cell's effective number format.
	NumFmt() styles.FormatSpec
}

// FormulaResult is the evaluated value of a formula cell.  Type is one of
// CellBlank, CellNumeric, CellString, CellBoolean or CellError.
type FormulaResult struct {
	Type   CellType
	Number float64
	Text   string
	Bool   bool
	Error  ErrorCode
}

// FormulaResolver evaluates formula cells.
type FormulaResolver interface {
	ResolveFormula(c Cell) (FormulaResult, error)
}
