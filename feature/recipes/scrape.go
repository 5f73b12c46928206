package recipes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"tft-atlas/core/cache"
)

// maxComponentNameLen guards against decorative images whose alt text is
// not a component name.
const maxComponentNameLen = 40

// Scraper fetches recipe tables from the pinned community sites. The
// selectors encode each site's current markup and break on redesigns;
// that brittleness is accepted, failures surface in the run report.
type Scraper struct {
	cfg        Config
	httpClient *http.Client
	cache      *cache.Cache
	logger     *zap.Logger
}

// NewScraper creates a scraper with an optional page cache.
func NewScraper(cfg Config, pageCache *cache.Cache, logger *zap.Logger) *Scraper {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 20
	}
	return &Scraper{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		cache:      pageCache,
		logger:     logger,
	}
}

// ScrapeAll collects raw recipe entries from every configured source.
// A failed source is logged and skipped; an error is returned only when
// no source yielded anything.
func (s *Scraper) ScrapeAll(ctx context.Context) ([]RawRecipeEntry, error) {
	var entries []RawRecipeEntry

	sources := []struct {
		name  string
		url   string
		parse func(*goquery.Document) []RawRecipeEntry
	}{
		{SourceMobalytics, s.cfg.MobalyticsURL, parseMobalytics},
		{SourceLolchess, s.cfg.LolchessURL, parseLolchess},
	}

	for _, src := range sources {
		doc, err := s.fetchDoc(ctx, src.url)
		if err != nil {
			s.logger.Warn("Recipe source failed",
				zap.String("source", src.name),
				zap.Error(err))
			continue
		}
		found := src.parse(doc)
		s.logger.Info("Scraped recipe source",
			zap.String("source", src.name),
			zap.Int("entries", len(found)))
		entries = append(entries, found...)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("all recipe sources failed or returned nothing")
	}
	return entries, nil
}

func (s *Scraper) fetchDoc(ctx context.Context, url string) (*goquery.Document, error) {
	cacheKey := "scrape:v1:" + url
	if html := s.cache.Get(ctx, cacheKey); html != "" {
		s.logger.Debug("Scrape cache hit", zap.String("url", url))
		return goquery.NewDocumentFromReader(strings.NewReader(html))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cacheKey, string(body))

	return goquery.NewDocumentFromReader(strings.NewReader(string(body)))
}

// parseMobalytics extracts recipes from the combined-items page.
// Each parent block holds a name marker div and a components container
// whose img alt attributes carry the component names. Recipes with two
// identical components appear as two identical img tags.
func parseMobalytics(doc *goquery.Document) []RawRecipeEntry {
	var entries []RawRecipeEntry

	doc.Find("div.m-jbp8l2.e5d3hmh5").Each(func(i int, parent *goquery.Selection) {
		nameMarker := parent.Find("div.m-1lt86v1.e5d3hmh7").First()
		if nameMarker.Length() == 0 {
			return
		}

		itemName := strings.TrimSpace(nameMarker.Find("div.m-dll4w4").First().Text())
		if itemName == "" {
			// Fallback: strip images and take the remaining text.
			clone := nameMarker.Clone()
			clone.Find("img").Remove()
			itemName = strings.TrimSpace(clone.Text())
		}
		if itemName == "" {
			return
		}

		var comps []string
		parent.Find("div.m-1d1ieym.e5d3hmh4").First().Find("img[alt]").Each(func(j int, img *goquery.Selection) {
			alt := strings.TrimSpace(img.AttrOr("alt", ""))
			if alt != "" && len(alt) <= maxComponentNameLen {
				comps = append(comps, alt)
			}
		})

		if len(comps) < 2 {
			return
		}
		entries = append(entries, RawRecipeEntry{
			ItemName:   itemName,
			Components: comps[:2],
			Source:     SourceMobalytics,
		})
	})

	return entries
}

// parseLolchess extracts recipes from the item table. Each row carries
// the combined item in the first cell and its two components as images
// in the combination cell.
func parseLolchess(doc *goquery.Document) []RawRecipeEntry {
	var entries []RawRecipeEntry

	doc.Find("table.guide-items-table tbody tr").Each(func(i int, row *goquery.Selection) {
		itemName := strings.TrimSpace(row.Find("td.item img").First().AttrOr("alt", ""))
		if itemName == "" {
			itemName = strings.TrimSpace(row.Find("td.item .name").First().Text())
		}
		if itemName == "" {
			return
		}

		var comps []string
		row.Find("td.combination img[alt]").Each(func(j int, img *goquery.Selection) {
			alt := strings.TrimSpace(img.AttrOr("alt", ""))
			if alt != "" && len(alt) <= maxComponentNameLen {
				comps = append(comps, alt)
			}
		})

		if len(comps) < 2 {
			return
		}
		entries = append(entries, RawRecipeEntry{
			ItemName:   itemName,
			Components: comps[:2],
			Source:     SourceLolchess,
		})
	})

	return entries
}
