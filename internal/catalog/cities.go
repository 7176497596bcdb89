package catalog

import "sort"

// RegionGroup is one region of a city with its selectable areas.
type RegionGroup struct {
	Label string   `json:"label"`
	Areas []string `json:"areas"`
}

// CityRegions is the static UK location catalog the location step
// validates against.
var CityRegions = map[string][]RegionGroup{
	"Bath": {
		{Label: "Bath", Areas: SortAreasByPostcode([]string{
			"City Centre - BA1", "Lansdown - BA1", "Weston - BA1", "Larkhall - BA1",
			"Widcombe - BA2", "Combe Down - BA2", "Southdown - BA2", "Oldfield Park - BA2",
		})},
	},
	"Birmingham": {
		{Label: "City Centre", Areas: SortAreasByPostcode([]string{
			"City Centre - B1", "Brindleyplace - B1", "Jewellery Quarter - B3", "Digbeth - B5",
		})},
		{Label: "North Birmingham", Areas: SortAreasByPostcode([]string{
			"Erdington - B23", "Perry Barr - B42", "Sutton Coldfield - B72",
		})},
		{Label: "South Birmingham", Areas: SortAreasByPostcode([]string{
			"Moseley - B13", "Kings Heath - B14", "Selly Oak - B29",
		})},
	},
	"Brighton": {
		{Label: "Central", Areas: SortAreasByPostcode([]string{
			"City Centre - BN1", "North Laine - BN1", "The Lanes - BN1",
		})},
		{Label: "Coastal", Areas: SortAreasByPostcode([]string{
			"Kemptown - BN2", "Brighton Marina - BN2", "Hove - BN3",
		})},
	},
	"London": {
		{Label: "Central London", Areas: SortAreasByPostcode([]string{
			"City of London - EC", "Holborn - WC1", "Bloomsbury - WC1", "Covent Garden - WC2",
			"Baker Street - W1", "Fitzrovia - W1", "Mayfair - W1", "Soho - W1",
			"The West End - W1", "Belgravia - SW1", "Westminster - SW1", "South Bank - SE1",
		})},
		{Label: "North London", Areas: SortAreasByPostcode([]string{
			"Angel - N1", "Finsbury Park - N4", "Highbury - N5", "Highgate - N6",
			"Crouch End - N8", "Muswell Hill - N10", "Stoke Newington - N16",
			"Camden Town - NW1", "Kentish Town - NW5",
		})},
		{Label: "East London", Areas: SortAreasByPostcode([]string{
			"Brick Lane - E1", "Mile End - E1", "Spitalfields - E1", "Whitechapel - E1",
			"Bethnal Green - E2", "Bow - E3", "Dalston - E8", "Hackney - E8",
			"Canary Wharf - E14", "Stratford - E15", "Shoreditch - EC2",
		})},
		{Label: "South London", Areas: SortAreasByPostcode([]string{
			"Brixton - SW2", "Clapham - SW4", "Battersea - SW11", "Balham - SW12",
			"Putney - SW15", "Tooting - SW17", "Wimbledon - SW19",
			"Greenwich - SE10", "Kennington - SE11", "Peckham - SE15",
		})},
		{Label: "West London", Areas: SortAreasByPostcode([]string{
			"Paddington - W2", "Notting Hill - W11", "Shepherds Bush - W12",
			"Hammersmith - W6", "Chiswick - W4", "Ealing - W5",
		})},
	},
	"Manchester": {
		{Label: "City Centre", Areas: SortAreasByPostcode([]string{
			"City Centre - M1", "Northern Quarter - M1", "Deansgate - M3", "Castlefield - M3",
		})},
		{Label: "Greater Manchester", Areas: SortAreasByPostcode([]string{
			"Salford - M5", "Chorlton - M21", "Didsbury - M20", "Fallowfield - M14",
		})},
	},
}

// Cities lists the known city names in alphabetical order.
func Cities() []string {
	names := make([]string, 0, len(CityRegions))
	for city := range CityRegions {
		names = append(names, city)
	}
	sort.Strings(names)
	return names
}

func IsKnownCity(city string) bool {
	_, ok := CityRegions[city]
	return ok
}

func IsKnownRegion(city, region string) bool {
	for _, g := range CityRegions[city] {
		if g.Label == region {
			return true
		}
	}
	return false
}

func IsKnownArea(city, region, area string) bool {
	for _, g := range CityRegions[city] {
		if g.Label != region {
			continue
		}
		for _, a := range g.Areas {
			if a == area {
				return true
			}
		}
	}
	return false
}
