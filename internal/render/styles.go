package render

import "fmt"

// palette holds the color choices for one PDF theme.
type palette struct {
	title   string
	heading string
	text    string
	accent  string
	serif   bool
}

// Theme palettes. The accent color underlines the document title and marks
// links and table headers.
var palettes = map[Style]palette{
	StyleDefault: {title: "#1a1a1a", heading: "#1a1a1a", text: "#333333", accent: "#3b82f6"},
	StyleModern:  {title: "#111827", heading: "#374151", text: "#1f2937", accent: "#3b82f6"},
	StyleMinimal: {title: "#000000", heading: "#000000", text: "#222222", accent: "#666666", serif: true},
}

// styleCSS builds the stylesheet for a PDF theme.
func styleCSS(s Style) string {
	p, ok := palettes[s]
	if !ok {
		p = palettes[StyleDefault]
	}

	family := `-apple-system, "Segoe UI", Helvetica, Arial, sans-serif`
	if p.serif {
		family = `Georgia, "Times New Roman", serif`
	}

	return fmt.Sprintf(`
body {
  font-family: %[1]s;
  font-size: 11pt;
  line-height: 1.5;
  color: %[2]s;
}
h1.doc-title {
  font-size: 24pt;
  color: %[3]s;
  border-bottom: 2px solid %[4]s;
  padding-bottom: 8px;
  margin-bottom: 20px;
}
h1 { font-size: 18pt; color: %[5]s; margin-top: 20px; margin-bottom: 12px; }
h2 { font-size: 14pt; color: %[5]s; margin-top: 16px; margin-bottom: 8px; }
h3 { font-size: 12pt; color: %[5]s; margin-top: 12px; margin-bottom: 6px; }
h1, h2, h3, h4, h5, h6 {
  break-after: avoid;
  page-break-after: avoid;
}
p { margin: 6px 0; }
ul, ol { padding-left: 20px; }
li { margin: 4px 0; }
a { color: %[4]s; }
code {
  font-family: "SF Mono", Menlo, Consolas, monospace;
  font-size: 10pt;
  background: #f3f4f6;
  padding: 1px 4px;
  border-radius: 3px;
}
pre {
  background: #f3f4f6;
  padding: 10px;
  border-radius: 4px;
  overflow-x: hidden;
  break-inside: avoid;
}
pre code { background: none; padding: 0; }
blockquote {
  margin: 10px 0;
  padding-left: 12px;
  border-left: 3px solid %[4]s;
  color: %[5]s;
}
table {
  border-collapse: collapse;
  width: 100%%;
  margin: 10px 0;
}
th {
  background: #f8f9fa;
  color: #374151;
  font-weight: bold;
  padding: 10px;
}
td { padding: 8px 10px; }
th, td {
  border: 0.5px solid #e5e7eb;
  text-align: left;
  vertical-align: middle;
}
`, family, p.text, p.title, p.accent, p.heading)
}
