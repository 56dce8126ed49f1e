package ssr

import (
	"context"
	"fmt"

	"goflare.io/kalori/internal/render"
	"goflare.io/kalori/internal/seo"
)

// Render builds the document for r. It reads nothing but r, so the same
// resolved data always renders the same bytes.
func (d *Dispatcher) Render(ctx context.Context, r *Resolved) (string, error) {
	_, span := d.tracer.Start(ctx, "ssr.Render")
	defer span.End()

	view, data, bundle := d.page(r)
	body, err := render.Page(view, data, bundle)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("render %s: %w", r.Shape, err)
	}
	return body, nil
}

func (d *Dispatcher) page(r *Resolved) (render.View, any, seo.Bundle) {
	chrome := render.NewChrome(d.seo.SiteName(), r.Groups, legalLinks())

	switch r.Shape {
	case ShapeHome:
		return render.ViewHome, render.HomeView{
			Chrome:   chrome,
			Featured: render.NewFoodCards(r.Foods),
		}, d.seo.Home()

	case ShapeFood:
		return render.ViewFood, render.FoodView{
			Chrome: chrome,
			Food:   render.NewFoodFacts(*r.Food),
		}, d.seo.Food(*r.Food)

	case ShapeSearch:
		view := render.ListView{
			Chrome:     chrome,
			Heading:    "Besin Ara",
			Query:      r.Query,
			ShowSearch: true,
			Foods:      render.NewFoodCards(r.Foods),
		}
		if r.Query != "" {
			view.Heading = fmt.Sprintf("“%s” için arama sonuçları", r.Query)
			view.Intro = fmt.Sprintf("%d besin bulundu.", len(r.Foods))
		}
		return render.ViewList, view, d.seo.Search(r.Query, len(r.Foods))

	case ShapeAllFoods:
		return render.ViewList, render.ListView{
			Chrome:     chrome,
			Heading:    "Tüm Besinler",
			Intro:      fmt.Sprintf("Toplam %d besin.", r.Total),
			Foods:      render.NewFoodCards(r.Foods),
			Pagination: render.NewPagination("/all-foods", r.Page, r.TotalPages),
		}, d.seo.AllFoods(r.Page, r.TotalPages, r.Total)

	case ShapeCategory:
		main := r.Group.MainCategory
		subs := make([]render.Link, 0, len(r.Group.Subcategories))
		for _, sub := range r.Group.Subcategories {
			subs = append(subs, render.Link{Name: sub, Href: render.SubcategoryHref(main, sub)})
		}
		return render.ViewList, render.ListView{
			Chrome:        chrome,
			Heading:       main,
			Intro:         fmt.Sprintf("%s kategorisinde %d besin.", main, len(r.Foods)),
			Foods:         render.NewFoodCards(r.Foods),
			Subcategories: subs,
		}, d.seo.Category(main, len(r.Foods))

	case ShapeSubcategory:
		main := r.Group.MainCategory
		return render.ViewList, render.ListView{
			Chrome:  chrome,
			Heading: r.Subcategory,
			Intro:   fmt.Sprintf("%s / %s kategorisinde %d besin.", main, r.Subcategory, len(r.Foods)),
			Foods:   render.NewFoodCards(r.Foods),
		}, d.seo.Subcategory(main, r.Subcategory, len(r.Foods))

	case ShapeCalculatorIndex:
		cards := make([]render.CalculatorCard, 0, len(calculators))
		for _, c := range calculators {
			cards = append(cards, render.CalculatorCard{
				Name:        c.Name,
				Href:        "/calculators/" + c.Slug,
				Description: c.Description,
			})
		}
		return render.ViewCalculators, render.CalculatorIndexView{
			Chrome:      chrome,
			Calculators: cards,
		}, d.seo.CalculatorIndex()

	case ShapeCalculator:
		c := r.Calculator
		return render.ViewCalculator, render.CalculatorView{
			Chrome:      chrome,
			Slug:        c.Slug,
			Name:        c.Name,
			Description: c.Description,
		}, d.seo.Calculator(c.Slug, c.Name, c.Description)

	case ShapeLegal:
		lp := r.Legal
		return render.ViewLegal, render.LegalView{
			Chrome:   chrome,
			Title:    lp.Title,
			Updated:  legalUpdated,
			Sections: lp.Sections,
		}, d.seo.Legal(lp.Slug, lp.Title, lp.Description, lp.Topic)

	default:
		return render.ViewMessage, render.MessageView{
			Chrome:  chrome,
			Title:   "Sayfa Bulunamadı",
			Message: "Aradığınız sayfa bulunamadı. Besin aramayı veya kategorilere göz atmayı deneyin.",
		}, d.seo.NotFound(r.Path)
	}
}
