package ssr

// Calculator is one client-side calculator page.
type Calculator struct {
	Slug        string
	Name        string
	Description string
	Priority    float64
}

var calculators = []Calculator{
	{
		Slug:        "vucut-kitle-indeksi",
		Name:        "Vücut Kitle İndeksi (VKİ) Hesaplama",
		Description: "Boy ve kilonuza göre vücut kitle indeksinizi hesaplayın ve hangi aralıkta olduğunuzu öğrenin.",
		Priority:    0.8,
	},
	{
		Slug:        "gunluk-kalori-ihtiyaci",
		Name:        "Günlük Kalori İhtiyacı Hesaplama",
		Description: "Yaş, cinsiyet ve aktivite düzeyinize göre günlük kalori ihtiyacınızı hesaplayın.",
		Priority:    0.8,
	},
	{
		Slug:        "ideal-kilo",
		Name:        "İdeal Kilo Hesaplama",
		Description: "Boyunuza ve cinsiyetinize göre ideal kilo aralığınızı hesaplayın.",
		Priority:    0.7,
	},
	{
		Slug:        "bazal-metabolizma",
		Name:        "Bazal Metabolizma Hızı Hesaplama",
		Description: "Dinlenme halinde vücudunuzun harcadığı enerjiyi hesaplayın.",
		Priority:    0.7,
	},
	{
		Slug:        "su-ihtiyaci",
		Name:        "Günlük Su İhtiyacı Hesaplama",
		Description: "Kilonuza ve aktivitenize göre günlük içmeniz gereken su miktarını hesaplayın.",
		Priority:    0.6,
	},
	{
		Slug:        "makro-besin",
		Name:        "Makro Besin Hesaplama",
		Description: "Hedefinize göre günlük protein, karbonhidrat ve yağ miktarlarınızı hesaplayın.",
		Priority:    0.6,
	},
}

// Calculators returns the known calculators in display order.
func Calculators() []Calculator {
	return append([]Calculator(nil), calculators...)
}

// LookupCalculator finds a calculator by slug.
func LookupCalculator(slug string) (Calculator, bool) {
	for _, c := range calculators {
		if c.Slug == slug {
			return c, true
		}
	}
	return Calculator{}, false
}
