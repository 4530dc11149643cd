// Package salary estimates and enriches compensation data for postings
// that carry none.
package salary

import "strings"

// Estimate is a salary band produced by the estimator.
type Estimate struct {
	Min      float64
	Max      float64
	Currency string
	Source   string
}

const estimatedSource = "estimated"

type band struct {
	keyword  string
	min, max float64
}

// Bands are matched in order, first hit wins. Compound titles come before
// the single words they contain so "product manager" never lands in the
// generic "manager" band.
var titleBands = []band{
	{"intern", 40000, 80000},
	{"junior", 60000, 90000},
	{"entry", 65000, 95000},
	{"senior manager", 160000, 230000},
	{"product manager", 100000, 170000},
	{"data scientist", 90000, 160000},
	{"software engineer", 80000, 130000},
	{"senior", 120000, 180000},
	{"staff", 160000, 220000},
	{"principal", 180000, 260000},
	{"lead", 140000, 200000},
	{"manager", 130000, 190000},
	{"director", 200000, 300000},
	{"vp", 250000, 400000},
	{"cto", 300000, 500000},
	{"architect", 140000, 210000},
	{"designer", 70000, 130000},
	{"devops", 90000, 150000},
	{"security", 95000, 165000},
	{"mobile", 85000, 145000},
	{"frontend", 75000, 135000},
	{"backend", 85000, 145000},
	{"fullstack", 80000, 140000},
}

var defaultBand = band{"software engineer", 80000, 130000}

var tier1Companies = []string{
	"google", "apple", "microsoft", "amazon", "meta", "facebook", "netflix",
	"tesla", "nvidia", "openai",
}

var tier2Companies = []string{
	"uber", "airbnb", "spotify", "slack", "zoom", "salesforce", "oracle",
	"ibm", "intel", "linkedin", "snap", "pinterest",
}

const (
	tier1Multiplier = 1.45
	tier2Multiplier = 1.25
	otherMultiplier = 1.05
)

type locationBand struct {
	keywords   []string
	multiplier float64
}

var locationBands = []locationBand{
	{[]string{"san francisco", "sf", "bay area", "palo alto"}, 1.30},
	{[]string{"new york", "nyc", "manhattan"}, 1.25},
	{[]string{"seattle", "boston", "los angeles", "austin"}, 1.15},
	{[]string{"remote"}, 1.10},
}

// Estimator derives a salary band from title, company tier and location.
// Same inputs always give the same band, which keeps the salary cache and
// re-runs consistent.
type Estimator struct{}

// NewEstimator returns a ready estimator.
func NewEstimator() *Estimator { return &Estimator{} }

// Estimate produces a salary band for a role.
func (e *Estimator) Estimate(title, company, location string) Estimate {
	b := bandFor(title)
	m := companyMultiplier(company) * locationMultiplier(location)

	return Estimate{
		Min:      float64(int(b.min * m)),
		Max:      float64(int(b.max * m)),
		Currency: "USD",
		Source:   estimatedSource,
	}
}

func bandFor(title string) band {
	lower := strings.ToLower(title)
	for _, b := range titleBands {
		if strings.Contains(lower, b.keyword) {
			return b
		}
	}
	return defaultBand
}

func companyMultiplier(company string) float64 {
	lower := strings.ToLower(company)
	for _, c := range tier1Companies {
		if strings.Contains(lower, c) {
			return tier1Multiplier
		}
	}
	for _, c := range tier2Companies {
		if strings.Contains(lower, c) {
			return tier2Multiplier
		}
	}
	return otherMultiplier
}

func locationMultiplier(location string) float64 {
	lower := strings.ToLower(location)
	for _, lb := range locationBands {
		for _, kw := range lb.keywords {
			if strings.Contains(lower, kw) {
				return lb.multiplier
			}
		}
	}
	return 1.0
}
