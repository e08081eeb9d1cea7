// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

// Country is a tracked market for launch and revenue projections.
type Country struct {
	Name string
	Code string

	// LaunchLagMonths is the typical delay after the first (US) launch.
	LaunchLagMonths int

	// RevenueShare is the country's share of global peak sales.
	RevenueShare float64

	PayerCoveragePct float64

	// PriceIndexPct is the net price relative to the US (US = 100).
	PriceIndexPct float64

	AccessStrategy string
}

var countries = []Country{
	{Name: "United States", Code: "US", LaunchLagMonths: 0, RevenueShare: 0.45, PayerCoveragePct: 90, PriceIndexPct: 100, AccessStrategy: "Commercial launch with specialty distribution"},
	{Name: "Germany", Code: "DE", LaunchLagMonths: 3, RevenueShare: 0.07, PayerCoveragePct: 95, PriceIndexPct: 60, AccessStrategy: "AMNOG early benefit assessment"},
	{Name: "United Kingdom", Code: "GB", LaunchLagMonths: 6, RevenueShare: 0.04, PayerCoveragePct: 85, PriceIndexPct: 45, AccessStrategy: "NICE technology appraisal"},
	{Name: "France", Code: "FR", LaunchLagMonths: 12, RevenueShare: 0.05, PayerCoveragePct: 90, PriceIndexPct: 50, AccessStrategy: "HAS assessment and CEPS negotiation"},
	{Name: "Italy", Code: "IT", LaunchLagMonths: 14, RevenueShare: 0.04, PayerCoveragePct: 85, PriceIndexPct: 45, AccessStrategy: "AIFA pricing and regional access"},
	{Name: "Spain", Code: "ES", LaunchLagMonths: 15, RevenueShare: 0.03, PayerCoveragePct: 80, PriceIndexPct: 42, AccessStrategy: "CIPM pricing and reimbursement"},
	{Name: "Japan", Code: "JP", LaunchLagMonths: 12, RevenueShare: 0.08, PayerCoveragePct: 95, PriceIndexPct: 55, AccessStrategy: "NHI price listing"},
	{Name: "China", Code: "CN", LaunchLagMonths: 24, RevenueShare: 0.06, PayerCoveragePct: 60, PriceIndexPct: 30, AccessStrategy: "NRDL negotiation"},
	{Name: "Canada", Code: "CA", LaunchLagMonths: 9, RevenueShare: 0.02, PayerCoveragePct: 75, PriceIndexPct: 55, AccessStrategy: "CDA-AMC review and pCPA negotiation"},
}

// Countries returns the tracked markets in projection order. The slice is a
// copy; callers may modify it.
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}
