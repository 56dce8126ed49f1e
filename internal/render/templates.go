package render

const documentTemplate = `<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Meta.Title}}</title>
{{- with .Meta.Description}}
<meta name="description" content="{{.}}">
{{- end}}
{{- with .Meta.Keywords}}
<meta name="keywords" content="{{.}}">
{{- end}}
{{- with .Meta.Robots}}
<meta name="robots" content="{{.}}">
{{- end}}
{{- with .Meta.Canonical}}
<link rel="canonical" href="{{.}}">
{{- end}}
{{- with .Meta.OGTitle}}
<meta property="og:title" content="{{.}}">
{{- end}}
{{- with .Meta.OGDescription}}
<meta property="og:description" content="{{.}}">
{{- end}}
{{- with .Meta.OGURL}}
<meta property="og:url" content="{{.}}">
{{- end}}
{{- with .Meta.OGType}}
<meta property="og:type" content="{{.}}">
{{- end}}
{{- with .Meta.OGSiteName}}
<meta property="og:site_name" content="{{.}}">
{{- end}}
{{- with .Meta.OGImage}}
<meta property="og:image" content="{{.}}">
<meta name="twitter:image" content="{{.}}">
{{- end}}
{{- with .Meta.TwitterCard}}
<meta name="twitter:card" content="{{.}}">
{{- end}}
{{- with .Meta.OGTitle}}
<meta name="twitter:title" content="{{.}}">
{{- end}}
{{- with .Meta.OGDescription}}
<meta name="twitter:description" content="{{.}}">
{{- end}}
<link rel="stylesheet" href="/assets/site.css">
{{- range .JSONLD}}
<script type="application/ld+json">{{.}}</script>
{{- end}}
</head>
<body>
{{.Body}}
{{- range .Scripts}}
<script type="module" src="{{.}}"></script>
{{- end}}
</body>
</html>
`

const pageTemplates = `
{{define "header"}}<header class="site-header">
<a class="logo" href="/">{{.SiteName}}</a>
<form class="search" action="/search" method="get"><input type="search" name="q" placeholder="Besin ara..." aria-label="Besin ara"></form>
<nav class="categories">
<ul>
{{- range .Categories}}
<li><a href="{{.Href}}">{{.Name}}</a>
{{- if .Subs}}<ul>{{range .Subs}}<li><a href="{{.Href}}">{{.Name}}</a></li>{{end}}</ul>{{end}}
</li>
{{- end}}
<li><a href="/all-foods">Tüm Besinler</a></li>
<li><a href="/calculators">Hesaplama Araçları</a></li>
</ul>
</nav>
</header>{{end}}

{{define "footer"}}<footer class="site-footer">
<ul>
{{- range .Legal}}
<li><a href="{{.Href}}">{{.Name}}</a></li>
{{- end}}
</ul>
<p>{{.SiteName}}</p>
</footer>{{end}}

{{define "cards"}}<ul class="food-list">
{{- range .}}
<li class="food-card"><a href="{{.Href}}">
{{- with .Image}}<img src="{{.}}" alt="" loading="lazy">{{end}}
<span class="name">{{.Name}}</span>
{{- with .Calories}}<span class="kcal">{{.}}</span>{{end}}
<span class="serving">{{.Serving}}</span>
</a></li>
{{- end}}
</ul>{{end}}

{{define "home"}}{{template "header" .Chrome}}
<main class="home">
<h1>Besinlerin Kalori ve Besin Değerleri</h1>
<p>Aradığınız besinin kalorisini ve besin değerlerini saniyeler içinde öğrenin.</p>
<section class="featured">
<h2>Öne Çıkan Besinler</h2>
{{template "cards" .Featured}}
</section>
<section class="category-grid">
<h2>Kategoriler</h2>
<ul>{{range .Categories}}<li><a href="{{.Href}}">{{.Name}}</a></li>{{end}}</ul>
</section>
</main>
{{template "footer" .Chrome}}{{end}}

{{define "food"}}{{template "header" .Chrome}}
<main class="food-detail">
{{- with .Food}}
<nav class="breadcrumb"><a href="/">Ana Sayfa</a>
{{- with .Category}} › <a href="{{.Href}}">{{.Name}}</a>{{end}}
{{- with .Subcategory}} › <a href="{{.Href}}">{{.Name}}</a>{{end}} › <span>{{.Name}}</span></nav>
<h1>{{.Name}}{{with .Calories}} Kaç Kalori?{{end}}</h1>
{{- with .NameEn}}
<p class="name-en">{{.}}</p>
{{- end}}
{{- with .Image}}
<img class="food-image" src="{{.}}" alt="{{$.Food.Name}}">
{{- end}}
<p class="serving">Porsiyon: {{.Serving}}</p>
{{- with .Calories}}
<p class="calories"><strong>{{.}}</strong> kcal</p>
{{- end}}
{{- if .Nutrients}}
<table class="nutrients">
<caption>Besin Değerleri ({{.Serving}})</caption>
<tbody>
{{- range .Nutrients}}
<tr><th scope="row">{{.Label}}</th><td>{{.Value}}</td></tr>
{{- end}}
</tbody>
</table>
{{- end}}
{{- end}}
</main>
{{template "footer" .Chrome}}{{end}}

{{define "list"}}{{template "header" .Chrome}}
<main class="listing">
<h1>{{.Heading}}</h1>
{{- with .Intro}}
<p>{{.}}</p>
{{- end}}
{{- if .ShowSearch}}
<form class="search-page" action="/search" method="get"><input type="search" name="q" value="{{.Query}}" aria-label="Besin ara"><button type="submit">Ara</button></form>
{{- end}}
{{- if .Subcategories}}
<ul class="subcategories">{{range .Subcategories}}<li><a href="{{.Href}}">{{.Name}}</a></li>{{end}}</ul>
{{- end}}
{{- if .Foods}}
{{template "cards" .Foods}}
{{- else}}
<p class="empty">Besin bulunamadı.</p>
{{- end}}
{{- with .Pagination}}
<nav class="pagination">
{{- with .PrevHref}}<a rel="prev" href="{{.}}">Önceki</a>{{end}}
<span>{{.Page}} / {{.TotalPages}}</span>
{{- with .NextHref}}<a rel="next" href="{{.}}">Sonraki</a>{{end}}
</nav>
{{- end}}
</main>
{{template "footer" .Chrome}}{{end}}

{{define "calculators"}}{{template "header" .Chrome}}
<main class="calculators">
<h1>Hesaplama Araçları</h1>
<ul>
{{- range .Calculators}}
<li><a href="{{.Href}}"><strong>{{.Name}}</strong></a><p>{{.Description}}</p></li>
{{- end}}
</ul>
</main>
{{template "footer" .Chrome}}{{end}}

{{define "calculator"}}{{template "header" .Chrome}}
<main class="calculator">
<h1>{{.Name}}</h1>
<p>{{.Description}}</p>
<div id="calculator" data-calculator="{{.Slug}}"></div>
<noscript>Hesaplama aracını kullanmak için JavaScript etkinleştirilmelidir.</noscript>
</main>
{{template "footer" .Chrome}}{{end}}

{{define "legal"}}{{template "header" .Chrome}}
<main class="legal">
<h1>{{.Title}}</h1>
{{- range .Sections}}
<section>
{{- with .Heading}}<h2>{{.}}</h2>{{end}}
<p>{{.Body}}</p>
</section>
{{- end}}
{{- with .Updated}}
<p class="updated">Son güncelleme: {{.}}</p>
{{- end}}
</main>
{{template "footer" .Chrome}}{{end}}

{{define "message"}}{{template "header" .Chrome}}
<main class="message">
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
<p><a href="/">Ana sayfaya dön</a></p>
</main>
{{template "footer" .Chrome}}{{end}}
`
