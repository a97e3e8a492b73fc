// Package badge renders flat SVG status badges with measured text widths.
package badge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Metrics measures rendered text width in pixels.
type Metrics interface {
	TextWidth(s string) float64
	FontFamily() string
}

// FontMetrics holds glyph advances measured from a real TTF/OTF face.
type FontMetrics struct {
	name     string
	advances map[rune]float64
	fallback float64
}

// TextWidth returns the pixel width of s using measured glyph advances.
func (m *FontMetrics) TextWidth(s string) float64 {
	var w float64
	for _, r := range s {
		if adv, ok := m.advances[r]; ok {
			w += adv
		} else {
			w += m.fallback
		}
	}
	return w
}

// FontFamily returns the font family name from the name table.
func (m *FontMetrics) FontFamily() string { return m.name }

// LoadFontFile loads a TTF/OTF from a filesystem path and measures glyph
// advances for printable ASCII at badge point size.
func LoadFontFile(path string) (*FontMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font file %s: %w", path, err)
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size: fontSize,
		DPI:  72,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face for %s: %w", path, err)
	}
	defer face.Close()

	advances := make(map[rune]float64, 95)
	var total float64
	var count int
	for r := rune(32); r <= 126; r++ {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		px := float64(adv) / 64.0 // fixed.Int26_6 → float64
		advances[r] = px
		total += px
		count++
	}

	fallback := fontSize * 0.6
	if count > 0 {
		fallback = total / float64(count)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	buf := &sfnt.Buffer{}
	if n, err := f.Name(buf, sfnt.NameIDFamily); err == nil && n != "" {
		name = n
	}

	return &FontMetrics{name: name, advances: advances, fallback: fallback}, nil
}

// approxMetrics estimates Verdana-like widths when no font file is given.
// Good enough for badge sizing; shields.io does the same trick.
type approxMetrics struct{}

func (approxMetrics) FontFamily() string { return "Verdana" }

func (approxMetrics) TextWidth(s string) float64 {
	var w float64
	for _, r := range s {
		switch {
		case r == 'i' || r == 'l' || r == 'j' || r == '.' || r == ',' || r == '\'':
			w += 3.5
		case r == 'm' || r == 'w' || r == 'M' || r == 'W':
			w += 10.5
		case r >= 'A' && r <= 'Z':
			w += 8
		default:
			w += 6.5
		}
	}
	return w
}
