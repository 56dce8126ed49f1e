package render

import (
	"net/url"
	"strconv"

	"goflare.io/kalori/internal/models"
)

// Link is a labelled href.
type Link struct {
	Name string
	Href string
}

// CategoryLink is a main category with its subcategory links, for navigation.
type CategoryLink struct {
	Link
	Subs []Link
}

// Chrome is the navigation shared by every page body.
type Chrome struct {
	SiteName   string
	Categories []CategoryLink
	Legal      []Link
}

// FoodCard is a food in a listing.
type FoodCard struct {
	Name     string
	Href     string
	Calories string
	Serving  string
	Image    string
}

// Nutrient is one labelled row of the nutrition table.
type Nutrient struct {
	Label string
	Value string
}

// FoodFacts is the detail view of a single food.
type FoodFacts struct {
	Name        string
	NameEn      string
	Serving     string
	Calories    string
	Image       string
	Category    *Link
	Subcategory *Link
	Nutrients   []Nutrient
}

// Pagination describes a page within a paginated listing.
type Pagination struct {
	Page       int
	TotalPages int
	PrevHref   string
	NextHref   string
}

// Section is a heading and paragraph of static text.
type Section struct {
	Heading string
	Body    string
}

type HomeView struct {
	Chrome
	Featured []FoodCard
}

type FoodView struct {
	Chrome
	Food FoodFacts
}

type ListView struct {
	Chrome
	Heading       string
	Intro         string
	Query         string
	ShowSearch    bool
	Foods         []FoodCard
	Subcategories []Link
	Pagination    *Pagination
}

type CalculatorCard struct {
	Name        string
	Href        string
	Description string
}

type CalculatorIndexView struct {
	Chrome
	Calculators []CalculatorCard
}

type CalculatorView struct {
	Chrome
	Slug        string
	Name        string
	Description string
}

type LegalView struct {
	Chrome
	Title    string
	Updated  string
	Sections []Section
}

type MessageView struct {
	Chrome
	Title   string
	Message string
}

// NewChrome builds navigation from category groups.
func NewChrome(siteName string, groups []models.CategoryGroup, legal []Link) Chrome {
	cats := make([]CategoryLink, 0, len(groups))
	for _, g := range groups {
		mainHref := CategoryHref(g.MainCategory)
		cl := CategoryLink{Link: Link{Name: g.MainCategory, Href: mainHref}}
		for _, sub := range g.Subcategories {
			cl.Subs = append(cl.Subs, Link{Name: sub, Href: SubcategoryHref(g.MainCategory, sub)})
		}
		cats = append(cats, cl)
	}
	return Chrome{SiteName: siteName, Categories: cats, Legal: legal}
}

// CategoryHref is the site path of a main category.
func CategoryHref(main string) string {
	return "/category/" + models.Slugify(main)
}

// SubcategoryHref is the site path of a subcategory.
func SubcategoryHref(main, sub string) string {
	return CategoryHref(main) + "/" + models.Slugify(sub)
}

// NewFoodCard maps a food for listings.
func NewFoodCard(f models.Food) FoodCard {
	card := FoodCard{
		Name:    f.Name,
		Href:    "/" + f.Slug,
		Serving: f.Serving(),
		Image:   f.ImageURL,
	}
	if kcal, ok := f.CaloriesRounded(); ok {
		card.Calories = strconv.Itoa(kcal) + " kcal"
	}
	return card
}

// NewFoodCards maps a list of foods.
func NewFoodCards(foods []models.Food) []FoodCard {
	cards := make([]FoodCard, 0, len(foods))
	for _, f := range foods {
		cards = append(cards, NewFoodCard(f))
	}
	return cards
}

var nutrientRows = []struct {
	label string
	unit  string
	value func(models.Food) string
}{
	{"Protein", "g", func(f models.Food) string { return f.Protein }},
	{"Karbonhidrat", "g", func(f models.Food) string { return f.Carbs }},
	{"Yağ", "g", func(f models.Food) string { return f.Fat }},
	{"Lif", "g", func(f models.Food) string { return f.Fiber }},
	{"Şeker", "g", func(f models.Food) string { return f.Sugar }},
	{"Sodyum", "mg", func(f models.Food) string { return f.Sodium }},
	{"Kolesterol", "mg", func(f models.Food) string { return f.Cholesterol }},
	{"Potasyum", "mg", func(f models.Food) string { return f.Potassium }},
	{"Kalsiyum", "mg", func(f models.Food) string { return f.Calcium }},
	{"Demir", "mg", func(f models.Food) string { return f.Iron }},
	{"C Vitamini", "mg", func(f models.Food) string { return f.VitaminC }},
}

// NewFoodFacts maps a food for its detail page. Unknown nutrients get no row.
func NewFoodFacts(f models.Food) FoodFacts {
	facts := FoodFacts{
		Name:    f.Name,
		Serving: f.Serving(),
		Image:   f.ImageURL,
	}
	if f.NameEn != "" && f.NameEn != f.Name {
		facts.NameEn = f.NameEn
	}
	if kcal, ok := f.CaloriesRounded(); ok {
		facts.Calories = strconv.Itoa(kcal)
	}
	if f.Category != "" {
		facts.Category = &Link{Name: f.Category, Href: CategoryHref(f.Category)}
		if f.Subcategory != "" {
			facts.Subcategory = &Link{Name: f.Subcategory, Href: SubcategoryHref(f.Category, f.Subcategory)}
		}
	}
	for _, row := range nutrientRows {
		if v, ok := models.Number(row.value(f)); ok {
			facts.Nutrients = append(facts.Nutrients, Nutrient{
				Label: row.label,
				Value: models.FormatNumber(v) + " " + row.unit,
			})
		}
	}
	return facts
}

// NewPagination builds prev/next links for base, keeping page 1 on the bare path.
func NewPagination(base string, page, totalPages int) *Pagination {
	if totalPages <= 1 {
		return nil
	}
	p := &Pagination{Page: page, TotalPages: totalPages}
	if page > 1 {
		p.PrevHref = pageHref(base, page-1)
	}
	if page < totalPages {
		p.NextHref = pageHref(base, page+1)
	}
	return p
}

func pageHref(base string, page int) string {
	if page <= 1 {
		return base
	}
	return base + "?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
}
