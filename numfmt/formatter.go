package numfmt

import (
	"fmt"
	"strings"
	"sync"

	"github.com/TsubasaBE/go-cellfmt/styles"
)

// CompiledFormat is the cached render template of one format section.
type CompiledFormat struct {
	Category Category
	// Template is the translated template: the decimal template for
	// numbers, the date template alphabet for dates, "whole num/den" for
	// fractions, and the section text for literal-only sections.
	Template string
	Elapsed  ElapsedSet
	// Fallback is set when translation failed and the section renders with
	// the default numeric templates.
	Fallback bool

	render func(v float64) string
}

// Render renders v through the compiled section.
func (cf *CompiledFormat) Render(v float64) string { return cf.render(v) }

type cacheKey struct {
	pattern string
	section int
}

// Formatter renders cell values with number formats.  Compiled sections
// are cached per (pattern, section) for the lifetime of the Formatter.  A
// Formatter is safe for concurrent use.
type Formatter struct {
	opts *Options

	mu        sync.RWMutex
	compiled  map[cacheKey]*CompiledFormat
	sections  map[string][]section
	overrides map[string]func(float64) string
}

// New returns a Formatter configured by opts.
func New(opts ...Option) *Formatter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Formatter{
		opts:      o,
		compiled:  make(map[cacheKey]*CompiledFormat),
		sections:  make(map[string][]section),
		overrides: make(map[string]func(float64) string),
	}
}

// Date1904 reports whether the Formatter uses the 1904 date system.
func (f *Formatter) Date1904() bool { return f.opts.date1904 }

// AddFormat registers fn as the renderer for the exact pattern string,
// bypassing translation.  "General" and "@" cannot be overridden.
func (f *Formatter) AddFormat(pattern string, fn func(float64) string) {
	if fn == nil || pattern == "@" || strings.EqualFold(pattern, "General") {
		f.opts.logger.Debug("numfmt: override ignored", "pattern", pattern)
		return
	}
	f.mu.Lock()
	f.overrides[pattern] = fn
	f.mu.Unlock()
}

// Format renders a numeric value with the format given by formatIndex and
// rawPattern.  An empty rawPattern selects the built-in pattern for
// formatIndex.  Format never fails: untranslatable patterns render with
// the default numeric templates.
func (f *Formatter) Format(value float64, formatIndex int, rawPattern string) string {
	spec := styles.FormatSpec{Index: formatIndex, Pattern: rawPattern}
	if spec.IsGeneral() {
		return renderGeneral(value)
	}
	pattern := spec.Resolve()

	f.mu.RLock()
	fn := f.overrides[pattern]
	f.mu.RUnlock()
	if fn != nil {
		return fn(value)
	}

	secs := f.sectionsFor(pattern)
	idx, v := pickSection(secs, value)
	switch idx {
	case sectionGeneral:
		return renderGeneral(value)
	case sectionOverflow:
		return overflowMarker
	}
	if secs[idx].text == "" {
		return ""
	}
	return f.compile(formatIndex, pattern, idx, secs[idx].text).render(v)
}

// FormatText renders a string value.  Patterns with a text section (the
// fourth section, or a single section containing '@') wrap the text;
// all others show it unchanged.
func (f *Formatter) FormatText(text string, formatIndex int, rawPattern string) string {
	spec := styles.FormatSpec{Index: formatIndex, Pattern: rawPattern}
	if spec.IsGeneral() {
		return text
	}
	secs := f.sectionsFor(spec.Resolve())
	i := textSectionIndex(secs)
	if i < 0 {
		return text
	}
	return renderText(Normalize(secs[i].text), text)
}

// FormatCell renders a cell.  Formula cells are evaluated through r; when
// r is nil or fails, the formula text is shown.
func (f *Formatter) FormatCell(c Cell, r FormulaResolver) string {
	spec := c.NumFmt()
	switch c.Type() {
	case CellNumeric:
		return f.Format(c.Number(), spec.Index, spec.Pattern)
	case CellString:
		return f.FormatText(c.Text(), spec.Index, spec.Pattern)
	case CellBoolean:
		return boolString(c.Bool())
	case CellError:
		return c.ErrorCode().String()
	case CellFormula:
		if r == nil {
			return c.Text()
		}
		res, err := r.ResolveFormula(c)
		if err != nil {
			f.opts.logger.Debug("numfmt: formula not resolved", "formula", c.Text(), "err", err)
			return c.Text()
		}
		return f.formatResult(res, spec)
	}
	return ""
}

func (f *Formatter) formatResult(res FormulaResult, spec styles.FormatSpec) string {
	switch res.Type {
	case CellNumeric:
		return f.Format(res.Number, spec.Index, spec.Pattern)
	case CellString:
		return f.FormatText(res.Text, spec.Index, spec.Pattern)
	case CellBoolean:
		return boolString(res.Bool)
	case CellError:
		return res.Error.String()
	}
	return ""
}

// Compiled returns the cache entry for one section of a format, compiling
// it on first use.  It returns nil when section is out of range.
func (f *Formatter) Compiled(formatIndex int, rawPattern string, section int) *CompiledFormat {
	pattern := styles.FormatSpec{Index: formatIndex, Pattern: rawPattern}.Resolve()
	secs := f.sectionsFor(pattern)
	if section < 0 || section >= len(secs) {
		return nil
	}
	return f.compile(formatIndex, pattern, section, secs[section].text)
}

func (f *Formatter) sectionsFor(pattern string) []section {
	f.mu.RLock()
	secs, ok := f.sections[pattern]
	f.mu.RUnlock()
	if ok {
		return secs
	}
	secs = parseSections(Normalize(pattern))
	f.mu.Lock()
	if cached, ok := f.sections[pattern]; ok {
		secs = cached
	} else {
		f.sections[pattern] = secs
	}
	f.mu.Unlock()
	return secs
}

func (f *Formatter) compile(formatIndex int, pattern string, section int, text string) *CompiledFormat {
	key := cacheKey{pattern: pattern, section: section}
	f.mu.RLock()
	cf := f.compiled[key]
	f.mu.RUnlock()
	if cf != nil {
		return cf
	}

	cf = f.build(formatIndex, text)
	f.mu.Lock()
	if cached := f.compiled[key]; cached != nil {
		cf = cached
	} else {
		f.compiled[key] = cf
	}
	f.mu.Unlock()
	return cf
}

// build translates one section.  Failures, including panics raised while
// tokenizing hostile input, produce a fallback entry.
func (f *Formatter) build(formatIndex int, text string) (cf *CompiledFormat) {
	defer func() {
		if r := recover(); r != nil {
			cf = f.fallback(text, fmt.Errorf("%w: panic: %v", ErrMalformedTemplate, r))
		}
	}()

	cat, err := Classify(formatIndex, text)
	if err != nil {
		if lit := literalSection(text); lit != "" {
			return &CompiledFormat{
				Category: CategoryGeneralText,
				Template: lit,
				render:   func(float64) string { return lit },
			}
		}
		f.opts.logger.Debug("numfmt: unrecognized format", "pattern", text, "err", err)
		return &CompiledFormat{Category: CategoryGeneralNumber, Template: "General", render: renderGeneral}
	}

	norm := Normalize(text)
	switch cat {
	case CategoryGeneralNumber, CategoryGeneralText:
		if t := strings.TrimSpace(norm); t == "@" || strings.EqualFold(t, "General") {
			return &CompiledFormat{Category: cat, Template: "General", render: renderGeneral}
		}
		return &CompiledFormat{Category: cat, Template: norm, render: generalSection(norm)}

	case CategoryDate:
		tmpl, err := TranslateDate(norm)
		if err != nil {
			return f.fallback(text, err)
		}
		date1904 := f.opts.date1904
		return &CompiledFormat{
			Category: CategoryDate,
			Template: tmpl.String(),
			Elapsed:  tmpl.Elapsed,
			render: func(v float64) string {
				s, err := tmpl.Render(v, date1904)
				if err != nil {
					return renderFallback(v)
				}
				return s
			},
		}

	case CategoryFraction:
		ff, err := compileFraction(norm)
		if err != nil {
			return f.fallback(text, err)
		}
		tmpl := "#/" + ff.denom
		if ff.whole != "" {
			tmpl = ff.whole + " " + tmpl
		}
		return &CompiledFormat{Category: CategoryFraction, Template: tmpl, render: ff.format}
	}

	t, err := TranslateNumber(norm)
	if err != nil {
		return f.fallback(text, err)
	}
	d, err := compileDecimal(t)
	if err != nil {
		return f.fallback(text, err)
	}
	return &CompiledFormat{Category: CategoryNumber, Template: t, render: d.format}
}

func (f *Formatter) fallback(text string, err error) *CompiledFormat {
	f.opts.logger.Debug("numfmt: translation failed", "pattern", text, "err", err)
	return &CompiledFormat{
		Category: CategoryNumber,
		Template: fallbackDecimal.template,
		Fallback: true,
		render:   renderFallback,
	}
}

// literalSection returns the text a section without placeholders shows,
// such as the "-" of an accounting zero section.
func literalSection(text string) string {
	return literalText(Normalize(text))
}
