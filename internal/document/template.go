package document

import "html/template"

// sheetTemplate lays the card images out on A4 landscape pages at physical
// card size so the sheet prints at 100% scale without adjustment.
var sheetTemplate = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.DeckName}}</title>
    <style>
        @page {
            size: A4 landscape;
            margin: 5mm;
        }
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: #fff;
        }
        .sheet {
            display: flex;
            flex-wrap: wrap;
            align-content: flex-start;
        }
        .card {
            width: {{printf "%.1f" .CardWidthMM}}mm;
            height: {{printf "%.1f" .CardHeightMM}}mm;
            page-break-inside: avoid;
        }
        .card img {
            width: 100%;
            height: 100%;
            object-fit: fill;
        }
        @media screen {
            body {
                background: #444;
                padding: 10mm;
            }
            .card {
                outline: 1px solid #222;
            }
        }
    </style>
</head>
<body>
    <div class="sheet">
{{- range .Cards}}
        <div class="card"><img src="{{.Src}}" alt="{{.Name}}"></div>
{{- end}}
    </div>
</body>
</html>
`))
