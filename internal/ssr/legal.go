package ssr

import (
	"goflare.io/kalori/internal/render"
	"goflare.io/kalori/internal/seo"
)

// legalUpdated is shown as the last-updated date of every static page. It is
// fixed so that repeated renders of the same page are identical.
const legalUpdated = "1 Ocak 2025"

// LegalPage is a static informational page.
type LegalPage struct {
	Slug        string
	Title       string
	Description string
	Topic       seo.Topic
	Sections    []render.Section
}

var legalPages = []LegalPage{
	{
		Slug:        "privacy-policy",
		Title:       "Gizlilik Politikası",
		Description: "Kişisel verilerinizin nasıl toplandığı, kullanıldığı ve korunduğu hakkında bilgi.",
		Sections: []render.Section{
			{Heading: "Toplanan Bilgiler", Body: "Sitemizi kullanırken tarayıcınızın gönderdiği teknik bilgiler (IP adresi, tarayıcı türü, ziyaret edilen sayfalar) sunucu kayıtlarında tutulabilir."},
			{Heading: "Bilgilerin Kullanımı", Body: "Toplanan bilgiler yalnızca hizmetin işletilmesi, güvenliği ve iyileştirilmesi amacıyla kullanılır; üçüncü taraflarla satılmaz."},
			{Heading: "Hesaplama Araçları", Body: "Hesaplama araçlarına girdiğiniz değerler tarayıcınızda işlenir ve sunucularımıza gönderilmez."},
		},
	},
	{
		Slug:        "terms-of-use",
		Title:       "Kullanım Koşulları",
		Description: "Siteyi kullanırken geçerli olan koşullar ve sorumluluk sınırları.",
		Sections: []render.Section{
			{Heading: "Bilgilendirme Amacı", Body: "Sitedeki besin değerleri ve hesaplama sonuçları genel bilgilendirme amaçlıdır ve tıbbi tavsiye yerine geçmez."},
			{Heading: "Doğruluk", Body: "Değerlerin doğruluğu için özen gösterilse de hatalar bulunabilir. Önemli kararlar için bir uzmana danışın."},
			{Heading: "İçerik Kullanımı", Body: "Sitedeki içerikler izin alınmadan toplu olarak kopyalanamaz ve başka yerlerde yayımlanamaz."},
		},
	},
	{
		Slug:        "kvkk",
		Title:       "KVKK Aydınlatma Metni",
		Description: "6698 sayılı Kişisel Verilerin Korunması Kanunu kapsamında aydınlatma metni.",
		Sections: []render.Section{
			{Heading: "Veri Sorumlusu", Body: "Kişisel verileriniz, veri sorumlusu sıfatıyla site yönetimi tarafından kanuna uygun olarak işlenir."},
			{Heading: "İşleme Amaçları", Body: "Veriler hizmetin sunulması, güvenliğin sağlanması ve yasal yükümlülüklerin yerine getirilmesi amaçlarıyla işlenir."},
			{Heading: "Haklarınız", Body: "Kanunun 11. maddesi uyarınca verilerinize erişme, düzeltilmesini veya silinmesini isteme haklarına sahipsiniz."},
		},
	},
	{
		Slug:        "cookie-policy",
		Title:       "Çerez Politikası",
		Description: "Sitede kullanılan çerezler ve bunları nasıl yönetebileceğiniz.",
		Sections: []render.Section{
			{Heading: "Çerez Nedir", Body: "Çerezler, ziyaret ettiğiniz sitelerin tarayıcınıza kaydettiği küçük metin dosyalarıdır."},
			{Heading: "Kullandığımız Çerezler", Body: "Yalnızca sitenin çalışması için gerekli çerezler ve anonim ziyaret istatistikleri için çerezler kullanılır."},
			{Heading: "Çerezleri Yönetme", Body: "Tarayıcı ayarlarınızdan çerezleri silebilir veya engelleyebilirsiniz."},
		},
	},
	{
		Slug:        "about",
		Title:       "Hakkımızda",
		Description: "Besin değerlerini sade ve hızlı biçimde sunan bu sitenin amacı ve ekibi hakkında bilgi.",
		Topic:       seo.TopicAbout,
		Sections: []render.Section{
			{Heading: "Amacımız", Body: "Beslenmesini takip etmek isteyen herkesin besinlerin kalori ve besin değerlerine kolayca ulaşmasını sağlamak."},
			{Heading: "Verilerimiz", Body: "Besin değerleri uluslararası veri tabanlarından alınır, Türkçeleştirilir ve porsiyon başına sunulur."},
		},
	},
	{
		Slug:        "contact",
		Title:       "İletişim",
		Description: "Soru, öneri ve düzeltme talepleriniz için bizimle iletişime geçin.",
		Topic:       seo.TopicContact,
		Sections: []render.Section{
			{Heading: "Bize Ulaşın", Body: "Soru, öneri ve hatalı besin değeri bildirimleriniz için e-posta ile yazabilirsiniz. Mesajlarınız genellikle iki iş günü içinde yanıtlanır."},
		},
	},
}

// LookupLegal finds a static page by slug.
func LookupLegal(slug string) (LegalPage, bool) {
	for _, lp := range legalPages {
		if lp.Slug == slug {
			return lp, true
		}
	}
	return LegalPage{}, false
}

func legalLinks() []render.Link {
	links := make([]render.Link, 0, len(legalPages))
	for _, lp := range legalPages {
		links = append(links, render.Link{Name: lp.Title, Href: "/" + lp.Slug})
	}
	return links
}
