// Package excelcell adapts cells of an excelize workbook to the numfmt
// rendering engine.
//
// A [Cell] is a snapshot of one worksheet cell: its stored type, value,
// formula text and effective number format.  A [Resolver] evaluates formula
// cells with the excelize calculation engine.
//
//	f, _ := excelize.OpenFile("book.xlsx")
//	c, _ := excelcell.Load(f, "Sheet1", "B2")
//	date1904, _ := excelcell.Date1904(f)
//	s := numfmt.New(numfmt.WithDate1904(date1904)).FormatCell(c, excelcell.Resolver{File: f})
package excelcell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/TsubasaBE/go-cellfmt/numfmt"
	"github.com/TsubasaBE/go-cellfmt/styles"
)

// ErrForeignCell is returned by [Resolver.ResolveFormula] for cells that
// were not produced by [Load].
var ErrForeignCell = errors.New("excelcell: cell was not loaded by excelcell")

// Cell is one loaded worksheet cell.  It implements [numfmt.Cell].
type Cell struct {
	Sheet string
	Axis  string

	typ     numfmt.CellType
	number  float64
	text    string
	boolean bool
	code    numfmt.ErrorCode
	spec    styles.FormatSpec
}

var _ numfmt.Cell = (*Cell)(nil)

// Type returns the stored cell type.  Formula cells report
// [numfmt.CellFormula] regardless of their cached result.
func (c *Cell) Type() numfmt.CellType { return c.typ }

// Number returns the numeric value of a [numfmt.CellNumeric] cell.
func (c *Cell) Number() float64 { return c.number }

// Text returns the string value, or the formula text of a formula cell.
func (c *Cell) Text() string { return c.text }

// Bool returns the value of a [numfmt.CellBoolean] cell.
func (c *Cell) Bool() bool { return c.boolean }

// ErrorCode returns the error of a [numfmt.CellError] cell.
func (c *Cell) ErrorCode() numfmt.ErrorCode { return c.code }

// NumFmt returns the effective number format from the cell style.
func (c *Cell) NumFmt() styles.FormatSpec { return c.spec }

// Load reads the cell at axis on sheet.
func Load(f *excelize.File, sheet, axis string) (*Cell, error) {
	c := &Cell{Sheet: sheet, Axis: axis}

	spec, err := numFmt(f, sheet, axis)
	if err != nil {
		return nil, err
	}
	c.spec = spec

	formula, err := f.GetCellFormula(sheet, axis)
	if err != nil {
		return nil, fmt.Errorf("excelcell: formula of %s!%s: %w", sheet, axis, err)
	}
	if formula != "" {
		c.typ = numfmt.CellFormula
		c.text = formula
		return c, nil
	}

	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return nil, fmt.Errorf("excelcell: type of %s!%s: %w", sheet, axis, err)
	}
	raw, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("excelcell: value of %s!%s: %w", sheet, axis, err)
	}

	switch typ {
	case excelize.CellTypeBool:
		c.typ = numfmt.CellBoolean
		c.boolean = raw == "1" || strings.EqualFold(raw, "TRUE")
	case excelize.CellTypeError:
		c.setError(raw)
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if raw == "" {
			c.typ = numfmt.CellBlank
			break
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			c.typ = numfmt.CellNumeric
			c.number = v
			break
		}
		c.typ = numfmt.CellString
		c.text = raw
	default:
		c.typ = numfmt.CellString
		c.text = raw
	}
	return c, nil
}

func (c *Cell) setError(lit string) {
	code, ok := numfmt.ParseErrorCode(lit)
	if !ok {
		c.typ = numfmt.CellString
		c.text = lit
		return
	}
	c.typ = numfmt.CellError
	c.code = code
}

// numFmt returns the effective number format of the cell.  Custom patterns
// that spell a built-in format map back to the built-in index.
func numFmt(f *excelize.File, sheet, axis string) (styles.FormatSpec, error) {
	idx, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return styles.FormatSpec{}, fmt.Errorf("excelcell: style of %s!%s: %w", sheet, axis, err)
	}
	st, err := f.GetStyle(idx)
	if err != nil {
		return styles.FormatSpec{}, fmt.Errorf("excelcell: style %d: %w", idx, err)
	}
	if st.CustomNumFmt != nil && *st.CustomNumFmt != "" {
		return styles.Spec(*st.CustomNumFmt), nil
	}
	return styles.FormatSpec{Index: st.NumFmt}, nil
}

// Date1904 reports whether the workbook uses the 1904 date system.
func Date1904(f *excelize.File) (bool, error) {
	props, err := f.GetWorkbookProps()
	if err != nil {
		return false, fmt.Errorf("excelcell: workbook properties: %w", err)
	}
	return props.Date1904 != nil && *props.Date1904, nil
}

// Resolver evaluates formula cells with the excelize calculation engine.
// It implements [numfmt.FormulaResolver].
type Resolver struct {
	File *excelize.File
}

var _ numfmt.FormulaResolver = Resolver{}

// ResolveFormula calculates the formula of c, which must come from [Load].
func (r Resolver) ResolveFormula(c numfmt.Cell) (numfmt.FormulaResult, error) {
	cell, ok := c.(*Cell)
	if !ok {
		return numfmt.FormulaResult{}, ErrForeignCell
	}
	v, err := r.File.CalcCellValue(cell.Sheet, cell.Axis, excelize.Options{RawCellValue: true})
	if err != nil {
		if code, ok := numfmt.ParseErrorCode(v); ok {
			return numfmt.FormulaResult{Type: numfmt.CellError, Error: code}, nil
		}
		return numfmt.FormulaResult{}, fmt.Errorf("excelcell: calculate %s!%s: %w", cell.Sheet, cell.Axis, err)
	}
	return parseResult(v), nil
}

// parseResult maps a calculated value to a formula result.
func parseResult(v string) numfmt.FormulaResult {
	if v == "" {
		return numfmt.FormulaResult{Type: numfmt.CellBlank}
	}
	if code, ok := numfmt.ParseErrorCode(v); ok {
		return numfmt.FormulaResult{Type: numfmt.CellError, Error: code}
	}
	switch v {
	case "TRUE":
		return numfmt.FormulaResult{Type: numfmt.CellBoolean, Bool: true}
	case "FALSE":
		return numfmt.FormulaResult{Type: numfmt.CellBoolean}
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return numfmt.FormulaResult{Type: numfmt.CellNumeric, Number: n}
	}
	return numfmt.FormulaResult{Type: numfmt.CellString, Text: v}
}
