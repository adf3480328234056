// Package report renders model-versus-reference comparisons for the
// callable bond programs.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/meenmo/qldemo/lattice"
)

// Line labels, padded so prices line up in a fixed-width column.
const (
	VasicekLabel   = "QL Vasicek price/yld (%)   "
	HullWhiteLabel = "QL HullWhite price/yld (%) "
	BloombergLabel = "Bloomberg price/yld (%)    "
)

// Quote is a clean price and yield (percent) for one volatility.
type Quote struct {
	Sigma    float64 `yaml:"sigma" csv:"sigma"`
	Price    float64 `yaml:"price" csv:"price"`
	YieldPct float64 `yaml:"yield_pct" csv:"yield_pct"`
}

// BloombergBAC returns the Bloomberg OAS1 quotes for BAC 4.65 09/15/12
// against a flat 5.5% semiannual curve.
func BloombergBAC() []Quote {
	return []Quote{
		{Sigma: lattice.Epsilon, Price: 96.50, YieldPct: 5.47},
		{Sigma: 0.01, Price: 95.68, YieldPct: 5.66},
		{Sigma: 0.03, Price: 92.34, YieldPct: 6.49},
		{Sigma: 0.06, Price: 87.16, YieldPct: 7.83},
		{Sigma: 0.12, Price: 77.31, YieldPct: 10.65},
	}
}

// Lookup returns the quote whose volatility matches sigma within machine
// epsilon.
func Lookup(quotes []Quote, sigma float64) (Quote, bool) {
	for _, q := range quotes {
		if math.Abs(q.Sigma-sigma) < lattice.Epsilon {
			return q, true
		}
	}
	return Quote{}, false
}

// Row is one model result in a comparison table.
type Row struct {
	Sigma      float64 `csv:"sigma"`
	Model      string  `csv:"model"`
	CleanPrice float64 `csv:"clean_price"`
	YieldPct   float64 `csv:"yield_pct"`
	RefPrice   float64 `csv:"ref_price"`
	RefYield   float64 `csv:"ref_yield_pct"`
	PriceDiff  float64 `csv:"price_diff"`
}

// NewRow fills the reference columns when ref is present.
func NewRow(sigma float64, model string, price, yieldPct float64, ref *Quote) Row {
	r := Row{Sigma: sigma, Model: model, CleanPrice: price, YieldPct: yieldPct}
	if ref != nil {
		r.RefPrice = ref.Price
		r.RefYield = ref.YieldPct
		r.PriceDiff = price - ref.Price
	}
	return r
}

// SigmaHeader is "sigma/vol (%) = 1.00".
func SigmaHeader(sigma float64) string {
	return fmt.Sprintf("sigma/vol (%%) = %.2f", 100*sigma)
}

// PriceYield is "<label><price> / <yield>" with two decimals.
func PriceYield(label string, price, yieldPct float64) string {
	return fmt.Sprintf("%s%.2f / %.2f", label, price, yieldPct)
}

// ReferenceLine prints the reference quote, or only the label when none is
// recorded for the volatility.
func ReferenceLine(q Quote, ok bool) string {
	if !ok {
		return BloombergLabel
	}
	return PriceYield(BloombergLabel, q.Price, q.YieldPct)
}

// LongDate is "October 16th, 2007".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// ElapsedString renders a run time as " \nRun completed in [h h ][m m ]s.s s\n".
func ElapsedString(d time.Duration) string {
	seconds := d.Seconds()
	hours := int(seconds / 3600)
	seconds -= float64(hours * 3600)
	minutes := int(seconds / 60)
	seconds -= float64(minutes * 60)

	var sb strings.Builder
	sb.WriteString(" \nRun completed in ")
	if hours > 0 {
		fmt.Fprintf(&sb, "%d h ", hours)
	}
	if hours > 0 || minutes > 0 {
		fmt.Fprintf(&sb, "%d m ", minutes)
	}
	fmt.Fprintf(&sb, "%.1f s\n", seconds)
	return sb.String()
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	return nil
}

// ReadCSV parses rows written by WriteCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("ReadCSV: %w", err)
	}
	return rows, nil
}
