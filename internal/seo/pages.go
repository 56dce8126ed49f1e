package seo

import (
	"fmt"
	"strconv"

	"goflare.io/kalori/internal/models"
)

// Topic selects the curated structured data attached to a static page.
type Topic int

const (
	TopicNone Topic = iota
	TopicAbout
	TopicContact
)

var homeFAQ = []QA{
	{
		Question: "Besinlerin kalori değerlerini nereden alıyorsunuz?",
		Answer:   "Değerler uluslararası besin veri tabanlarından alınır ve porsiyon başına hesaplanarak Türkçe olarak sunulur.",
	},
	{
		Question: "Kalori değerleri porsiyon başına mı gösteriliyor?",
		Answer:   "Evet. Her besin sayfasında belirtilen porsiyon için kalori, protein, karbonhidrat ve yağ değerleri listelenir.",
	},
	{
		Question: "Hesaplama araçları ücretsiz mi?",
		Answer:   "Vücut kitle indeksi, günlük kalori ihtiyacı ve diğer tüm hesaplama araçları ücretsizdir ve kayıt gerektirmez.",
	},
}

var aboutFAQ = []QA{
	{
		Question: "Bu site kimler için hazırlandı?",
		Answer:   "Beslenmesini takip etmek isteyen herkes için; besin değerlerini sade ve hızlı biçimde sunmayı amaçlıyoruz.",
	},
	{
		Question: "Sitedeki bilgiler tıbbi tavsiye yerine geçer mi?",
		Answer:   "Hayır. İçerikler bilgilendirme amaçlıdır; beslenme planınız için bir uzmana danışmanız önerilir.",
	},
}

// Home is the fixed landing page bundle.
func (b *Builder) Home() Bundle {
	return b.bundle(Page{
		Title:       b.siteName + " | Besinlerin Kalori ve Besin Değerleri",
		Description: "Binlerce besinin kalori, protein, karbonhidrat ve yağ değerlerini öğrenin. Ücretsiz kalori ve beslenme hesaplama araçlarını kullanın.",
		Keywords:    []string{"kalori", "besin değerleri", "kalori tablosu", "kalori hesaplama"},
		Path:        "/",
	}, b.FAQ(homeFAQ))
}

// Food is the detail page bundle for one food.
func (b *Builder) Food(f models.Food) Bundle {
	serving := f.Serving()

	title := f.Name + " Besin Değerleri | " + b.siteName
	description := fmt.Sprintf("%s (%s) besin değerleri: protein, karbonhidrat, yağ ve vitaminler.", f.Name, serving)
	if kcal, ok := f.CaloriesRounded(); ok {
		title = fmt.Sprintf("%s Kaç Kalori? %d kcal | %s", f.Name, kcal, b.siteName)
		description = fmt.Sprintf("%s (%s) %d kalori içerir. Protein, karbonhidrat, yağ ve diğer besin değerlerini inceleyin.", f.Name, serving, kcal)
	}

	keywords := []string{f.Name, f.Name + " kalori", f.Name + " besin değerleri"}
	if f.Category != "" {
		keywords = append(keywords, f.Category)
	}

	path := "/" + f.Slug
	return b.bundle(Page{
		Title:       title,
		Description: description,
		Keywords:    keywords,
		Path:        path,
		Image:       f.ImageURL,
		Article:     true,
	},
		b.Breadcrumb(Crumb{Name: "Ana Sayfa", Path: "/"}, Crumb{Name: f.Name, Path: path}),
		b.Nutrition(f),
	)
}

// Search is the results page bundle. Result pages are not indexed.
func (b *Builder) Search(query string, count int) Bundle {
	p := Page{
		Title:       "Besin Ara | " + b.siteName,
		Description: "Besin adına göre arama yapın ve kalori değerlerini hemen görün.",
		Path:        "/search",
		NoIndex:     true,
	}
	if query != "" {
		p.Title = fmt.Sprintf("\"%s\" için arama sonuçları | %s", query, b.siteName)
		p.Description = fmt.Sprintf("\"%s\" araması için %d besin bulundu.", query, count)
	}
	return b.bundle(p)
}

// AllFoods is the paginated listing bundle. Page 1 canonicalizes to the bare path.
func (b *Builder) AllFoods(page, totalPages, total int) Bundle {
	path := "/all-foods"
	title := "Tüm Besinler | " + b.siteName
	if page > 1 {
		path += "?page=" + strconv.Itoa(page)
		title = fmt.Sprintf("Tüm Besinler - Sayfa %d | %s", page, b.siteName)
	}
	return b.bundle(Page{
		Title:       title,
		Description: fmt.Sprintf("%d besinin kalori ve besin değerleri alfabetik sırayla. Sayfa %d / %d.", total, page, max(totalPages, 1)),
		Keywords:    []string{"besin listesi", "kalori tablosu"},
		Path:        path,
	})
}

// CalculatorIndex is the calculators hub bundle.
func (b *Builder) CalculatorIndex() Bundle {
	return b.bundle(Page{
		Title:       "Hesaplama Araçları | " + b.siteName,
		Description: "Vücut kitle indeksi, günlük kalori ihtiyacı, ideal kilo ve daha fazlası için ücretsiz hesaplama araçları.",
		Keywords:    []string{"kalori hesaplama", "bmi hesaplama", "ideal kilo"},
		Path:        "/calculators",
	})
}

// Calculator is the bundle for one calculator.
func (b *Builder) Calculator(slug, name, description string) Bundle {
	path := "/calculators/" + slug
	return b.bundle(Page{
		Title:       name + " | " + b.siteName,
		Description: description,
		Keywords:    []string{name, "hesaplama"},
		Path:        path,
	}, b.Breadcrumb(
		Crumb{Name: "Ana Sayfa", Path: "/"},
		Crumb{Name: "Hesaplama Araçları", Path: "/calculators"},
		Crumb{Name: name, Path: path},
	))
}

// Category is the bundle for a main category listing.
func (b *Builder) Category(main string, count int) Bundle {
	path := "/category/" + models.Slugify(main)
	return b.bundle(Page{
		Title:       main + " Kalori Değerleri | " + b.siteName,
		Description: fmt.Sprintf("%s kategorisindeki %d besinin kalori ve besin değerleri.", main, count),
		Keywords:    []string{main, main + " kalori"},
		Path:        path,
	}, b.Breadcrumb(
		Crumb{Name: "Ana Sayfa", Path: "/"},
		Crumb{Name: main, Path: path},
	))
}

// Subcategory is the bundle for a subcategory listing.
func (b *Builder) Subcategory(main, sub string, count int) Bundle {
	mainPath := "/category/" + models.Slugify(main)
	path := mainPath + "/" + models.Slugify(sub)
	return b.bundle(Page{
		Title:       fmt.Sprintf("%s - %s Kalori Değerleri | %s", sub, main, b.siteName),
		Description: fmt.Sprintf("%s > %s kategorisindeki %d besinin kalori ve besin değerleri.", main, sub, count),
		Keywords:    []string{sub, main, sub + " kalori"},
		Path:        path,
	}, b.Breadcrumb(
		Crumb{Name: "Ana Sayfa", Path: "/"},
		Crumb{Name: main, Path: mainPath},
		Crumb{Name: sub, Path: path},
	))
}

// Legal is the bundle for a static page. About and contact get their curated documents.
func (b *Builder) Legal(slug, title, description string, topic Topic) Bundle {
	p := Page{
		Title:       title + " | " + b.siteName,
		Description: description,
		Path:        "/" + slug,
	}
	switch topic {
	case TopicAbout:
		return b.bundle(p, b.FAQ(aboutFAQ))
	case TopicContact:
		return b.bundle(p, b.Contact())
	default:
		return b.bundle(p)
	}
}

// NotFound is the bundle for unknown paths.
func (b *Builder) NotFound(path string) Bundle {
	return b.bundle(Page{
		Title:       "Sayfa Bulunamadı | " + b.siteName,
		Description: "Aradığınız sayfa bulunamadı. Besin aramayı veya kategorilere göz atmayı deneyin.",
		Path:        path,
		NoIndex:     true,
	})
}

// ServerError is the bundle for the generic failure page.
func (b *Builder) ServerError() Bundle {
	return b.bundle(Page{
		Title:       "Bir Hata Oluştu | " + b.siteName,
		Description: "Beklenmeyen bir hata oluştu. Lütfen daha sonra tekrar deneyin.",
		Path:        "/",
		NoIndex:     true,
	})
}

// Shell is the bundle served with the client-rendered development shell.
func (b *Builder) Shell(path string) Bundle {
	return b.bundle(Page{
		Title:   b.siteName,
		Path:    path,
		NoIndex: true,
	})
}
