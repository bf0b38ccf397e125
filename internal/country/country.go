// Package country resolves country names found in content metadata to the
// ISO 3166-1 alpha-3 codes the game uses for its flag images.
package country

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// aliases covers spellings common in mod metadata that differ from the CLDR
// English region names.
var aliases = map[string]string{
	"usa":                      "USA",
	"us":                       "USA",
	"united states of america": "USA",
	"america":                  "USA",
	"uk":                       "GBR",
	"great britain":            "GBR",
	"britain":                  "GBR",
	"england":                  "GBR",
	"scotland":                 "GBR",
	"wales":                    "GBR",
	"russian federation":       "RUS",
	"korea":                    "KOR",
	"korea, republic of":       "KOR",
	"republic of korea":        "KOR",
	"czech republic":           "CZE",
	"holland":                  "NLD",
	"the netherlands":          "NLD",
	"uae":                      "ARE",
	"viet nam":                 "VNM",
	"macau":                    "MAC",
	"turkey":                   "TUR",
}

var folder = cases.Fold()

var byName = sync.OnceValue(func() map[string]string {
	namer := display.English.Regions()
	names := make(map[string]string, 300)
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			region, err := language.ParseRegion(string([]rune{a, b}))
			if err != nil || !region.IsCountry() {
				continue
			}
			iso3 := region.ISO3()
			if iso3 == "" {
				continue
			}
			if name := namer.Name(region); name != "" {
				names[folder.String(name)] = iso3
			}
			names[folder.String(region.String())] = iso3
			names[folder.String(iso3)] = iso3
		}
	}
	for alias, iso3 := range aliases {
		names[folder.String(alias)] = iso3
	}
	return names
})

// ISO3 returns the alpha-3 code for name. Dots are ignored so "U.S.A." and
// "USA" resolve alike. The second result is false for unknown names.
func ISO3(name string) (string, bool) {
	key := strings.TrimSpace(strings.ReplaceAll(name, ".", ""))
	if key == "" {
		return "", false
	}
	iso3, ok := byName()[folder.String(key)]
	return iso3, ok
}
