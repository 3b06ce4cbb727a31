package plot

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

const doctype = `<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">`

// Bytes composes the SVG document. Links are generated on first use.
func (p *Plotter) Bytes() []byte {
	p.finalize()

	var buf bytes.Buffer
	buf.WriteString(doctype + "\n")
	fmt.Fprintf(&buf, `<svg version="1.1" xmlns="http://www.w3.org/2000/svg" height="%d" width="%d">`+"\n", p.height, p.width)
	fmt.Fprintf(&buf, `  <rect height="%d" width="%d" fill="#000000" />`+"\n", p.height, p.width)

	for _, layer := range [][]string{p.distanceLines, p.primaryLines, p.markers, p.overlays, p.text} {
		for _, el := range layer {
			buf.WriteString("  ")
			buf.WriteString(el)
			buf.WriteByte('\n')
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteTo writes the SVG document to w.
func (p *Plotter) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Bytes())
	return int64(n), err
}

// num formats device coordinates without exponent notation or trailing zeros.
func num(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
