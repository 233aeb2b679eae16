package browse

// Region is a filter label grouping several countries.
type Region string

const (
	RegionEurope       Region = "Europe"
	RegionNorthAmerica Region = "North America"
	RegionAsiaPacific  Region = "Asia Pacific"
	RegionAfrica       Region = "Africa"
	RegionLatinAmerica Region = "Latin America"
)

var regionOrder = []Region{
	RegionEurope,
	RegionNorthAmerica,
	RegionAsiaPacific,
	RegionAfrica,
	RegionLatinAmerica,
}

var regionCountries = map[Region][]string{
	RegionEurope:       {"EU", "UK"},
	RegionNorthAmerica: {"Canada"},
	RegionAsiaPacific:  {"Singapore", "South Korea"},
	RegionAfrica:       {"Rwanda", "Tunisia"},
	RegionLatinAmerica: {"Brazil"},
}

// Regions returns the region table's labels in display order.
func Regions() []Region {
	out := make([]Region, len(regionOrder))
	copy(out, regionOrder)
	return out
}

// Countries returns the countries mapped to r, or nil for an unknown label.
func (r Region) Countries() []string {
	countries := regionCountries[r]
	if countries == nil {
		return nil
	}
	out := make([]string, len(countries))
	copy(out, countries)
	return out
}

// ResolveRegions returns the union of countries belonging to the selected
// regions. Unknown labels contribute nothing. An empty selection yields an
// empty set; callers decide whether that means "unrestricted".
func ResolveRegions(selected []Region) map[string]struct{} {
	allowed := make(map[string]struct{})
	for _, r := range selected {
		for _, country := range regionCountries[r] {
			allowed[country] = struct{}{}
		}
	}
	return allowed
}
