// Package export produces the two standalone invoice artifacts: a print
// document that relies on the shared stylesheet inside its own page, and a
// downloadable file whose styling is fully inlined per element.
package export

import (
	"fmt"
	"html"

	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice/inline"
	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice/render"
)

// printDelayMillis is a defensive margin between invoking the platform print
// dialog and closing the auxiliary page, so the dialog can fully initialize.
const printDelayMillis = 250

const printCSS = `* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Segoe UI', 'Helvetica Neue', Arial, sans-serif; color: #000; background: #fff; display: flex; justify-content: center; }
table { width: 100%; border-collapse: collapse; }
th, td { padding: 12px 8px; }
@media print {
  body { print-color-adjust: exact; -webkit-print-color-adjust: exact; }
}`

const downloadCSS = `* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Segoe UI', 'Helvetica Neue', Arial, sans-serif; color: #000; background: #fff; display: flex; justify-content: center; }`

// Artifact is a single export output, ready to be served.
type Artifact struct {
	Filename    string
	ContentType string
	Body        string
}

// Exporter renders and packages invoices. Print and download are independent:
// each call computes its own render and, for downloads, its own snapshot.
type Exporter struct {
	renderer render.Renderer
	engine   *inline.Engine
}

func New(renderer render.Renderer) (*Exporter, error) {
	engine, err := inline.NewEngine(render.Stylesheet)
	if err != nil {
		return nil, err
	}
	return &Exporter{renderer: renderer, engine: engine}, nil
}

// PrintDocument builds the auxiliary print page: invoice markup, the shared
// stylesheet, minimal reset/print CSS, and an auto-print script that waits
// out the dialog-initialization delay before closing the page.
func (e *Exporter) PrintDocument(input render.RenderInput) (Artifact, error) {
	fragment, err := e.renderer.RenderHTML(input)
	if err != nil {
		return Artifact{}, err
	}

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Invoice - %s</title>
  <style>
%s
%s
  </style>
</head>
<body>
%s
<script>
  window.addEventListener('load', function () {
    setTimeout(function () {
      window.print();
      window.close();
    }, %d);
  });
</script>
</body>
</html>`, html.EscapeString(input.Order.OrderNumber), printCSS, render.Stylesheet, fragment, printDelayMillis)

	return Artifact{ContentType: "text/html; charset=utf-8", Body: body}, nil
}

// DownloadDocument builds the portable invoice file. The snapshot step runs
// fresh for every call; if it fails no artifact is produced.
func (e *Exporter) DownloadDocument(input render.RenderInput) (Artifact, error) {
	fragment, err := e.renderer.RenderHTML(input)
	if err != nil {
		return Artifact{}, err
	}

	snapshot, err := e.engine.Snapshot(fragment)
	if err != nil {
		return Artifact{}, err
	}

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Invoice - %s</title>
  <style>
%s
  </style>
</head>
<body>%s</body>
</html>`, html.EscapeString(input.Order.OrderNumber), downloadCSS, snapshot)

	return Artifact{
		Filename:    fmt.Sprintf("Invoice-%s.html", input.Order.OrderNumber),
		ContentType: "text/html; charset=utf-8",
		Body:        body,
	}, nil
}
