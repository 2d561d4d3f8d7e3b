package site

// pageTemplate renders one analysis as a standalone HTML page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} — {{.ProjectName}}</title>
<link rel="stylesheet" href="style.css">
</head>
<body>
<div class="wrap">
  <p><a href="index.html">&larr; All analyses</a></p>
  <h1>{{.Title}}</h1>
  <ul class="meta">
    {{if .ChannelName}}<li>Channel: {{.ChannelName}}</li>{{end}}
    {{if .PublishedAt}}<li>Published: {{.PublishedAt}}</li>{{end}}
    <li>Duration: {{.Duration}}</li>
    <li>Timestamps valid: {{.TimestampsValid}}</li>
    <li>Sponsor excluded: {{.VanEckExcluded}}</li>
    <li><a href="{{.VideoURL}}">Watch on YouTube</a></li>
  </ul>
  <div class="analysis">
{{.Content}}
  </div>
</div>
</body>
</html>
`

// indexTemplate renders the export's landing page.
const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.ProjectName}}</title>
<link rel="stylesheet" href="style.css">
</head>
<body>
<div class="wrap">
  <h1>{{.ProjectName}}</h1>
  <ul class="listing">
    {{range .Entries}}
    <li>
      {{if .Failed}}<span class="failed">{{.Title}} (analysis failed)</span>
      {{else}}<a href="{{.Page}}">{{.Title}}</a>{{end}}
      <span class="meta-inline">{{.ChannelName}}{{if .PublishedAt}} &middot; {{.PublishedAt}}{{end}}</span>
    </li>
    {{end}}
  </ul>
</div>
</body>
</html>
`

// cssContent is the stylesheet shared by all exported pages.
const cssContent = `body {
  margin: 0;
  font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
  background: #fafbfc;
  color: #1f2933;
  line-height: 1.65;
}
.wrap { max-width: 760px; margin: 0 auto; padding: 48px 24px; }
a { color: #1565d8; }
h1 { margin-bottom: 10px; }
.meta { list-style: none; padding: 0; color: #5f6c7b; font-size: .9rem; }
.meta li { display: inline-block; margin-right: 18px; }
.listing { list-style: none; padding: 0; }
.listing li { padding: 10px 0; border-bottom: 1px solid #e4e9ee; }
.meta-inline { color: #8a97a5; font-size: .85rem; margin-left: 10px; }
.failed { color: #b0423e; }
.analysis pre { background: #f0f3f6; padding: 12px; border-radius: 6px; overflow-x: auto; }
.analysis code { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: .9em; }
`
