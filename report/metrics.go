package report

import (
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/sartorproj/covidstats/epi"
	"github.com/sartorproj/covidstats/timeseries"
)

// Metric names written by WriteMetrics.
const (
	MetricTotalCases   = "covid_total_cases"
	MetricTotalDeaths  = "covid_total_deaths"
	MetricPeakCases    = "covid_peak_daily_cases"
	MetricPeakDeaths   = "covid_peak_daily_deaths"
	MetricFatalityRate = "covid_case_fatality_rate_percent"
	MetricFirstReport  = "covid_first_report_timestamp_seconds"
	MetricLastReport   = "covid_last_report_timestamp_seconds"
	MetricObservedDays = "covid_observed_days"
	labelCountry       = "country"
	labelPeakDate      = "date"
)

// WriteMetrics writes the headline numbers of a in the Prometheus text
// exposition format, one gauge family per number. Missing values are left
// out; an undefined fatality rate is written as NaN.
func WriteMetrics(w io.Writer, a *epi.Analysis) error {
	s := a.Summary
	families := []*dto.MetricFamily{
		gauge(MetricTotalCases, "Latest cumulative confirmed cases.", a.Country, s.TotalCases),
		gauge(MetricTotalDeaths, "Latest cumulative confirmed deaths.", a.Country, s.TotalDeaths),
		peakGauge(MetricPeakCases, "Highest daily new cases.", a.Country, s.PeakCases),
		peakGauge(MetricPeakDeaths, "Highest daily new deaths.", a.Country, s.PeakDeaths),
		gauge(MetricFatalityRate, "Latest case fatality rate in percent.", a.Country, a.CurrentFatalityRate),
		gauge(MetricFirstReport, "Date of the first observation.", a.Country,
			epi.Measure{Value: float64(s.FirstDate.Unix())}),
		gauge(MetricLastReport, "Date of the last observation.", a.Country,
			epi.Measure{Value: float64(s.LastDate.Unix())}),
		gauge(MetricObservedDays, "Number of daily observations.", a.Country,
			epi.Measure{Value: float64(a.Frame.Len())}),
	}

	for _, mf := range families {
		if len(mf.Metric) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func gauge(name, help, country string, m epi.Measure, labels ...*dto.LabelPair) *dto.MetricFamily {
	mf := &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
	if m.Flag == timeseries.Missing {
		return mf
	}
	pairs := append([]*dto.LabelPair{{
		Name:  proto.String(labelCountry),
		Value: proto.String(country),
	}}, labels...)
	mf.Metric = []*dto.Metric{{
		Label: pairs,
		// An undefined measure already holds NaN.
		Gauge: &dto.Gauge{Value: proto.Float64(m.Value)},
	}}
	return mf
}

func peakGauge(name, help, country string, p epi.Peak) *dto.MetricFamily {
	return gauge(name, help, country, p.Measure, &dto.LabelPair{
		Name:  proto.String(labelPeakDate),
		Value: proto.String(p.Date.Format(timeseries.DateFormat)),
	})
}
