package casestudy

import (
	"strings"
	"time"
)

// PolicyType classifies the legal instrument behind a case study.
type PolicyType string

const (
	TypeComprehensive    PolicyType = "comprehensive"
	TypeBill             PolicyType = "bill"
	TypeVoluntary        PolicyType = "voluntary"
	TypeNationalStrategy PolicyType = "national_strategy"
	TypeSandbox          PolicyType = "sandbox"
	TypeSectoral         PolicyType = "sectoral"
)

// DisplayName renders the type the way list cards show it ("national strategy").
func (t PolicyType) DisplayName() string {
	return strings.Replace(string(t), "_", " ", 1)
}

// DataQuality grades how reliable a case study's outcome figures are.
type DataQuality string

const (
	QualityHigh      DataQuality = "high"
	QualityMedium    DataQuality = "medium"
	QualityProjected DataQuality = "projected"
)

var qualityLabels = map[DataQuality]string{
	QualityHigh:      "High Quality",
	QualityMedium:    "Standardized",
	QualityProjected: "Projected",
}

// Qualities returns the closed set of data quality tiers in display order.
func Qualities() []DataQuality {
	return []DataQuality{QualityHigh, QualityMedium, QualityProjected}
}

// Valid reports whether q is one of the known tiers.
func (q DataQuality) Valid() bool {
	_, ok := qualityLabels[q]
	return ok
}

// Label returns the human label for q. Unknown tiers render as medium.
func (q DataQuality) Label() string {
	if label, ok := qualityLabels[q]; ok {
		return label
	}
	return qualityLabels[QualityMedium]
}

// Summary is the lightweight list-view record for a case study.
type Summary struct {
	ID          string      `json:"id" yaml:"id"`
	Country     string      `json:"country" yaml:"country"`
	PolicyName  string      `json:"policy_name" yaml:"policy_name"`
	PolicyType  PolicyType  `json:"policy_type" yaml:"policy_type"`
	DataQuality DataQuality `json:"data_quality" yaml:"data_quality"`
	EnactedDate string      `json:"enacted_date" yaml:"enacted_date"`
	Tags        []string    `json:"tags" yaml:"tags"`
}

var enactedDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01",
	"2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Enacted parses EnactedDate. ok is false for missing or unparseable dates.
func (s Summary) Enacted() (time.Time, bool) {
	raw := strings.TrimSpace(s.EnactedDate)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range enactedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Policy describes the instrument itself.
type Policy struct {
	Name          string   `json:"name" yaml:"name"`
	EnactedDate   string   `json:"enacted_date" yaml:"enacted_date"`
	Description   string   `json:"description" yaml:"description"`
	KeyProvisions []string `json:"key_provisions,omitempty" yaml:"key_provisions"`
}

type SocialImpact struct {
	TrustChangePct   float64 `json:"trust_change_pct" yaml:"trust_change_pct"`
	BiasReductionPct float64 `json:"bias_reduction_pct" yaml:"bias_reduction_pct"`
}

type EconomicImpact struct {
	ComplianceCostsUSD float64 `json:"compliance_costs_usd" yaml:"compliance_costs_usd"`
	StartupGrowthPct   float64 `json:"startup_growth_pct" yaml:"startup_growth_pct"`
}

type ImplementationReality struct {
	TimelineMonths    float64 `json:"timeline_months" yaml:"timeline_months"`
	ComplianceRatePct float64 `json:"compliance_rate_pct" yaml:"compliance_rate_pct"`
}

// Outcomes groups the measured effects of a policy.
type Outcomes struct {
	SocialImpact          SocialImpact          `json:"social_impact" yaml:"social_impact"`
	EconomicImpact        EconomicImpact        `json:"economic_impact" yaml:"economic_impact"`
	ImplementationReality ImplementationReality `json:"implementation_reality" yaml:"implementation_reality"`
	QualitativeInsights   []string              `json:"qualitative_insights,omitempty" yaml:"qualitative_insights"`
}

// Metadata scores how comparable a case study is to the consuming jurisdiction.
type Metadata struct {
	GDPRatioToMorocco float64 `json:"gdp_ratio_to_morocco" yaml:"gdp_ratio_to_morocco"`
	LegalSimilarity   float64 `json:"legal_similarity" yaml:"legal_similarity"`
	TechMaturityGap   float64 `json:"tech_maturity_gap" yaml:"tech_maturity_gap"`
}

// Detail is the fully hydrated case study, fetched on demand.
type Detail struct {
	Summary  `yaml:",inline"`
	Policy   Policy   `json:"policy" yaml:"policy"`
	Outcomes Outcomes `json:"outcomes" yaml:"outcomes"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}
