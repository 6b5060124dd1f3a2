// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbtdiag

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/nbt/lib/nbt"
)

// DefaultMaxItems is the array abbreviation threshold used when
// Options.MaxItems is zero.
const DefaultMaxItems = 32

// Options configures a dump.
type Options struct {
	// Color enables ANSI styling.
	Color bool

	// Theme overrides DefaultTheme when Color is set.
	Theme *Theme

	// Indent is the per-level indent. Empty selects two spaces.
	Indent string

	// MaxItems abbreviates primitive arrays longer than this. Zero
	// selects DefaultMaxItems; negative prints every element.
	MaxItems int
}

// dumper holds the state for one dump.
type dumper struct {
	output   strings.Builder
	styles   styles
	indent   string
	maxItems int
}

// Format renders tag as text.
func Format(tag nbt.Tag, options Options) string {
	d := &dumper{
		styles:   plainStyles(),
		indent:   options.Indent,
		maxItems: options.MaxItems,
	}
	if options.Color {
		theme := DefaultTheme
		if options.Theme != nil {
			theme = *options.Theme
		}
		// SetColorProfile pins the profile; without it the renderer
		// re-detects from the environment and drops color when no TTY
		// is attached.
		renderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI256))
		renderer.SetColorProfile(termenv.ANSI256)
		d.styles = newStyles(renderer, theme)
	}
	if d.indent == "" {
		d.indent = "  "
	}
	if d.maxItems == 0 {
		d.maxItems = DefaultMaxItems
	}

	d.tag(tag.Name, tag.Value, 0, true)
	return d.output.String()
}

// Write renders tag to w.
func Write(w io.Writer, tag nbt.Tag, options Options) error {
	_, err := io.WriteString(w, Format(tag, options))
	return err
}

func (d *dumper) line(level int, text string) {
	d.output.WriteString(strings.Repeat(d.indent, level))
	d.output.WriteString(text)
	d.output.WriteByte('\n')
}

// header renders TAG_Kind("name") or, for list items, TAG_Kind.
func (d *dumper) header(kind nbt.Kind, name string, named bool) string {
	label := d.styles.label(kind.Label())
	if !named || name == "" {
		return label
	}
	return label + "(" + d.styles.name(strconv.Quote(name)) + ")"
}

func (d *dumper) tag(name string, value nbt.Value, level int, named bool) {
	kind := nbt.KindEnd
	if value != nil {
		kind = value.Kind()
	}
	header := d.header(kind, name, named)

	switch typed := value.(type) {
	case *nbt.Compound:
		d.line(level, header+": "+d.styles.summary(entries(typed.Len())))
		d.line(level, "{")
		for child := range typed.Tags() {
			d.tag(child.Name, child.Value, level+1, true)
		}
		d.line(level, "}")
	case nbt.List:
		summary := fmt.Sprintf("%s of type %s", entries(typed.Len()), typed.Element.Label())
		d.line(level, header+": "+d.styles.summary(summary))
		d.line(level, "{")
		for _, item := range typed.Items {
			d.tag("", item, level+1, false)
		}
		d.line(level, "}")
	case nbt.Unknown:
		warning := fmt.Sprintf("<unknown discriminator %d>", typed.Discriminator)
		d.line(level, header+": "+d.styles.warning(warning))
	default:
		d.line(level, header+": "+d.scalar(value))
	}
}

func entries(count int) string {
	if count == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", count)
}

func (d *dumper) scalar(value nbt.Value) string {
	switch typed := value.(type) {
	case nbt.Byte:
		return d.styles.number(strconv.FormatInt(int64(typed), 10))
	case nbt.Short:
		return d.styles.number(strconv.FormatInt(int64(typed), 10))
	case nbt.Int:
		return d.styles.number(strconv.FormatInt(int64(typed), 10))
	case nbt.Long:
		return d.styles.number(strconv.FormatInt(int64(typed), 10))
	case nbt.Float:
		return d.styles.number(strconv.FormatFloat(float64(typed), 'g', -1, 32))
	case nbt.Double:
		return d.styles.number(strconv.FormatFloat(float64(typed), 'g', -1, 64))
	case nbt.String:
		return d.styles.text(strconv.Quote(string(typed)))
	case nbt.ByteArray:
		return d.array(len(typed), func(index int) string { return strconv.Itoa(int(int8(typed[index]))) })
	case nbt.ShortArray:
		return d.array(len(typed), func(index int) string { return strconv.Itoa(int(typed[index])) })
	case nbt.IntArray:
		return d.array(len(typed), func(index int) string { return strconv.Itoa(int(typed[index])) })
	case nbt.LongArray:
		return d.array(len(typed), func(index int) string { return strconv.FormatInt(typed[index], 10) })
	case nbt.FloatArray:
		return d.array(len(typed), func(index int) string {
			return strconv.FormatFloat(float64(typed[index]), 'g', -1, 32)
		})
	case nbt.DoubleArray:
		return d.array(len(typed), func(index int) string {
			return strconv.FormatFloat(typed[index], 'g', -1, 64)
		})
	case nbt.StringArray:
		return d.array(len(typed), func(index int) string { return strconv.Quote(typed[index]) })
	case nbt.Object:
		return d.styles.summary(fmt.Sprintf("object %q", typed.TypeName)) + " " + fmt.Sprintf("%+v", typed.Value)
	case nbt.ObjectArray:
		return d.styles.summary(fmt.Sprintf("%s of object %q", entries(len(typed.Values)), typed.TypeName))
	case nil, nbt.End:
		return d.styles.summary("<end>")
	default:
		return fmt.Sprintf("%v", value)
	}
}

// array renders [a, b, c], abbreviating past maxItems.
func (d *dumper) array(length int, element func(int) string) string {
	shown := length
	if d.maxItems >= 0 && shown > d.maxItems {
		shown = d.maxItems
	}
	parts := make([]string, shown)
	for index := range shown {
		parts[index] = element(index)
	}
	text := "[" + strings.Join(parts, ", ")
	if shown < length {
		text += fmt.Sprintf(", ... %d more", length-shown)
	}
	return d.styles.number(text + "]")
}
