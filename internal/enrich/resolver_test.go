package enrich

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type fakeSearch struct {
	snippets     []string
	imageLinks   []string
	snippetCalls int
	imageCalls   int
	err          error
}

func (f *fakeSearch) SearchSnippets(ctx context.Context, query string, limit int) ([]string, error) {
	f.snippetCalls++
	return f.snippets, f.err
}

func (f *fakeSearch) SearchImages(ctx context.Context, query string, limit int) ([]string, error) {
	f.imageCalls++
	return f.imageLinks, f.err
}

type fakeVision struct {
	text string
	err  error
}

func (f *fakeVision) DescribeImage(ctx context.Context, prompt, imageB64, mimeType string) (string, error) {
	return f.text, f.err
}

func (f *fakeVision) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

type fakeFetcher struct {
	body        []byte
	contentType string
	calls       int
	err         error
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	f.calls++
	return f.body, f.contentType, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestResolver(search *fakeSearch, vision *fakeVision, fetcher *fakeFetcher) *Resolver {
	return NewResolver(search, vision, fetcher, time.Minute, 100, 1, time.Millisecond, discardLogger())
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestProductionVolumeSpecialTable(t *testing.T) {
	r := newTestResolver(&fakeSearch{}, &fakeVision{}, &fakeFetcher{})

	got := r.ProductionVolume(context.Background(), "Lamborghini Veneno")
	if got != "14 (5 coupe + 9 roadster)" {
		t.Errorf("ProductionVolume = %q", got)
	}

	// Accent-folded names hit the same entry.
	got = r.ProductionVolume(context.Background(), "  LAMBORGHINI  Veneno ")
	if got != "14 (5 coupe + 9 roadster)" {
		t.Errorf("ProductionVolume with odd spacing = %q", got)
	}

	// Curated figures win even for mass-market marques.
	got = r.ProductionVolume(context.Background(), "BYD Seal")
	if got == popularBrandVolume {
		t.Error("curated BYD Seal figure lost to the popular-brand answer")
	}
	if !strings.Contains(got, "30,000") {
		t.Errorf("ProductionVolume = %q, want curated BYD Seal figure", got)
	}
}

func TestProductionVolumePopularBrand(t *testing.T) {
	search := &fakeSearch{}
	r := newTestResolver(search, &fakeVision{}, &fakeFetcher{})

	got := r.ProductionVolume(context.Background(), "Toyota Corolla")
	if got != popularBrandVolume {
		t.Errorf("ProductionVolume = %q, want %q", got, popularBrandVolume)
	}
	if search.snippetCalls != 0 {
		t.Errorf("popular brand answer should not hit search, got %d calls", search.snippetCalls)
	}
}

func TestProductionVolumeFromSnippets(t *testing.T) {
	search := &fakeSearch{snippets: []string{
		"The model sold well in 2022.",
		"More than 21,807 units were built between 2019 and 2023.",
	}}
	r := newTestResolver(search, &fakeVision{}, &fakeFetcher{})

	got := r.ProductionVolume(context.Background(), "Porsche Taycan")
	if got != "21,807 units" {
		t.Errorf("ProductionVolume = %q, want 21,807 units", got)
	}
}

func TestProductionVolumeModelFallback(t *testing.T) {
	search := &fakeSearch{snippets: []string{"A rare grand tourer from 2021."}}
	vision := &fakeVision{text: "1,500 units"}
	r := newTestResolver(search, vision, &fakeFetcher{})

	got := r.ProductionVolume(context.Background(), "Pagani Utopia")
	if got != "1,500 units" {
		t.Errorf("ProductionVolume = %q, want model answer", got)
	}
}

func TestProductionVolumeDefaultEstimate(t *testing.T) {
	search := &fakeSearch{err: errors.New("quota exceeded")}
	vision := &fakeVision{err: errors.New("unavailable")}
	r := newTestResolver(search, vision, &fakeFetcher{})

	got := r.ProductionVolume(context.Background(), "Zenvo Aurora")
	if got != volumeEstimateDefault {
		t.Errorf("ProductionVolume = %q, want default estimate", got)
	}
}

func TestProductionVolumeCachesResult(t *testing.T) {
	search := &fakeSearch{snippets: []string{"Roughly 15,000 units rolled off the line."}}
	r := newTestResolver(search, &fakeVision{}, &fakeFetcher{})

	r.ProductionVolume(context.Background(), "Porsche Taycan")
	r.ProductionVolume(context.Background(), "porsche taycan")
	if search.snippetCalls != 1 {
		t.Errorf("search called %d times, want 1 (cached)", search.snippetCalls)
	}
}

func TestPriceEstimate(t *testing.T) {
	search := &fakeSearch{snippets: []string{
		"Priced from $200,000 in the US.",
		"Listings around $300,000 depending on spec.",
	}}
	r := newTestResolver(search, &fakeVision{}, &fakeFetcher{})

	got := r.PriceEstimate(context.Background(), "Ferrari Roma")
	if got != "$ 250 000" {
		t.Errorf("PriceEstimate = %q, want $ 250 000", got)
	}
}

func TestPriceEstimateNoFigures(t *testing.T) {
	search := &fakeSearch{snippets: []string{"Pricing varies by market."}}
	r := newTestResolver(search, &fakeVision{}, &fakeFetcher{})

	if got := r.PriceEstimate(context.Background(), "Ferrari Roma"); got != "" {
		t.Errorf("PriceEstimate = %q, want empty", got)
	}
}

func TestLogoURLEmbedsImage(t *testing.T) {
	search := &fakeSearch{imageLinks: []string{"https://example.com/logo.png"}}
	fetcher := &fakeFetcher{body: pngBytes(t, 200, 200), contentType: "image/png"}
	r := newTestResolver(search, &fakeVision{}, fetcher)

	got := r.LogoURL(context.Background(), "Ferrari")
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("LogoURL = %q, want png data URL", got)
	}

	r.LogoURL(context.Background(), "ferrari")
	if search.imageCalls != 1 {
		t.Errorf("image search called %d times, want 1 (cached)", search.imageCalls)
	}
}

func TestLogoURLRejectsUnusableImages(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *fakeFetcher
	}{
		{"too small", &fakeFetcher{body: pngBytes(t, 10, 10), contentType: "image/png"}},
		{"wrong type", &fakeFetcher{body: []byte("<svg/>"), contentType: "image/svg+xml"}},
		{"fetch error", &fakeFetcher{err: errors.New("403")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			search := &fakeSearch{imageLinks: []string{"https://example.com/logo"}}
			r := newTestResolver(search, &fakeVision{}, tt.fetcher)
			if got := r.LogoURL(context.Background(), "Ferrari"); got != "" {
				t.Errorf("LogoURL = %q, want empty", got)
			}
		})
	}
}

func TestLogoURLEmptyBrand(t *testing.T) {
	search := &fakeSearch{}
	r := newTestResolver(search, &fakeVision{}, &fakeFetcher{})
	if got := r.LogoURL(context.Background(), "  "); got != "" {
		t.Errorf("LogoURL = %q, want empty", got)
	}
	if search.imageCalls != 0 {
		t.Error("empty brand should not hit search")
	}
}
