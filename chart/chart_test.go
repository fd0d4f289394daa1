package chart

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/sartorproj/covidstats/epi"
	"github.com/sartorproj/covidstats/timeseries"
)

// sampleAnalysis builds ~70 days spanning three months, with a leading run
// of zero cases (undefined fatality rate) and gaps in the stringency index.
func sampleAnalysis(t *testing.T, days int) *epi.Analysis {
	t.Helper()
	var b strings.Builder
	b.WriteString("location,date,new_cases,new_deaths,total_cases,total_deaths,new_cases_smoothed,stringency_index\n")

	base := time.Date(2020, 2, 20, 0, 0, 0, 0, time.UTC)
	total, deaths := 0, 0
	for i := 0; i < days; i++ {
		cases := 0
		if i >= 5 {
			cases = (i * 7) % 40
		}
		died := cases / 10
		total += cases
		deaths += died

		smoothed := ""
		if i >= 6 {
			smoothed = fmt.Sprintf("%.3f", float64(total)/float64(i+1))
		}
		stringency := ""
		if i%9 != 0 {
			stringency = fmt.Sprintf("%.2f", 20+float64(i%50))
		}
		fmt.Fprintf(&b, "Afghanistan,%s,%d,%d,%d,%d,%s,%s\n",
			base.AddDate(0, 0, i).Format(timeseries.DateFormat), cases, died, total, deaths, smoothed, stringency)
	}

	table, err := timeseries.LoadTableFromReader(strings.NewReader(b.String()), nil)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}
	f, err := epi.SelectCountry(table, "Afghanistan")
	if err != nil {
		t.Fatalf("SelectCountry: %v", err)
	}
	a, err := epi.Analyze(f)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return a
}

func decode(t *testing.T, name string, data []byte) (int, int) {
	t.Helper()
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("%s: not a PNG", name)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("%s: decode: %v", name, err)
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

func TestRenderAll(t *testing.T) {
	images, err := RenderAll(sampleAnalysis(t, 70))
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}

	expected := []string{DailyFile, MonthlyFile, TotalFile, FatalityFile, StringencyFile, WavesFile}
	if len(images) != len(expected) {
		t.Fatalf("Expected %d images, got %d", len(expected), len(images))
	}
	for i, img := range images {
		if img.Name != expected[i] {
			t.Errorf("Image %d: expected %s, got %s", i, expected[i], img.Name)
		}
		w, h := decode(t, img.Name, img.Data)
		if w <= h {
			t.Errorf("%s: expected a landscape image, got %dx%d", img.Name, w, h)
		}
	}
}

func TestRenderStackedIsTaller(t *testing.T) {
	a := sampleAnalysis(t, 40)

	daily, err := Daily(a)
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	totals, err := Totals(a)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}

	_, dh := decode(t, DailyFile, daily)
	_, th := decode(t, TotalFile, totals)
	if dh <= th {
		t.Errorf("Expected stacked chart taller than single chart, got %d <= %d", dh, th)
	}
}

func TestRenderShortSeries(t *testing.T) {
	// Fewer rows than the rolling window: the waves chart has no points.
	a := sampleAnalysis(t, 3)

	data, err := Waves(a)
	if err != nil {
		t.Fatalf("Waves: %v", err)
	}
	decode(t, WavesFile, data)

	data, err = StringencyVsCases(a)
	if err != nil {
		t.Fatalf("StringencyVsCases: %v", err)
	}
	decode(t, StringencyFile, data)
}

func TestRenderSingleDay(t *testing.T) {
	images, err := RenderAll(sampleAnalysis(t, 1))
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	for _, img := range images {
		decode(t, img.Name, img.Data)
	}
}
