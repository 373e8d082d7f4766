package config

import (
	"fmt"
	"maps"

	"github.com/BurntSushi/toml"
)

// defaultAliases rewrites the names used by the GDP and population files (and
// a few emissions-file spellings) onto the emissions file's vocabulary.
//
// Monaco, San Marino and Taiwan are folded into France, Italy and China: the
// emissions file only reports them combined.
var defaultAliases = map[string]string{
	"Korea, Dem. People's Rep.":      "DEMOCRATIC PEOPLE S REPUBLIC OF KOREA",
	"Korea, Rep.":                    "REPUBLIC OF KOREA",
	"Vietnam":                        "VIET NAM",
	"Czechia":                        "CZECH REPUBLIC",
	"United States":                  "UNITED STATES OF AMERICA",
	"Cameroon":                       "REPUBLIC OF CAMEROON",
	"Slovak Republic":                "SLOVAKIA",
	"Bosnia and Herzegovina":         "BOSNIA & HERZEGOVINA",
	"Venezuela, RB":                  "VENEZUELA",
	"Egypt, Arab Rep.":               "EGYPT",
	"Lao PDR":                        "LAO PEOPLE S DEMOCRATIC REPUBLIC",
	"Bahamas, The":                   "BAHAMAS",
	"Hong Kong SAR, China":           "HONG KONG SPECIAL ADMINSTRATIVE REGION OF CHINA",
	"Macao SAR, China":               "MACAU SPECIAL ADMINSTRATIVE REGION OF CHINA",
	"Congo, Dem. Rep.":               "DEMOCRATIC REPUBLIC OF THE CONGO (FORMERLY ZAIRE)",
	"Congo, Rep.":                    "CONGO",
	"China":                          "CHINA",
	"Tanzania":                       "UNITED REPUBLIC OF TANZANIA",
	"Gambia, The":                    "GAMBIA",
	"Timor-Leste":                    "TIMOR-LESTE (FORMERLY EAST TIMOR)",
	"Kyrgyz Republic":                "KYRGYZSTAN",
	"Bolivia":                        "PLURINATIONAL STATE OF BOLIVIA",
	"South Sudan":                    "REPUBLIC OF SOUTH SUDAN",
	"Sudan":                          "SUDAN",
	"Sao Tome and Principe":          "SAO TOME & PRINCIPE",
	"Yemen, Rep.":                    "YEMEN",
	"St. Lucia":                      "SAINT LUCIA",
	"Turkiye":                        "TURKEY",
	"St. Kitts and Nevis":            "ST. KITTS-NEVIS",
	"Myanmar":                        "MYANMAR (FORMERLY BURMA)",
	"Guinea-Bissau":                  "GUINEA BISSAU",
	"Iran, Islamic Rep.":             "ISLAMIC REPUBLIC OF IRAN",
	"Cote d'Ivoire":                  "COTE D IVOIRE",
	"Brunei Darussalam":              "BRUNEI (DARUSSALAM)",
	"St. Vincent and the Grenadines": "ST. VINCENT & THE GRENADINES",
	"Micronesia, Fed. Sts.":          "FEDERATED STATES OF MICRONESIA",
	"Moldova":                        "REPUBLIC OF MOLDOVA",
	"Antigua and Barbuda":            "ANTIGUA & BARBUDA",
	"Sint Maarten (Dutch part)":      "SAINT MARTIN (DUTCH PORTION)",
	"Cabo Verde":                     "CAPE VERDE",
	"Faroe Islands":                  "FAEROE ISLANDS",
	"Eswatini":                       "SWAZILAND",
	"Palau":                          "PACIFIC ISLANDS (PALAU)",
	"Monaco":                         "France",
	"San Marino":                     "Italy",
	"REPUBLIC OF SUDAN":              "SUDAN",
	"TAIWAN":                         "CHINA",
	"CHINA (MAINLAND)":               "CHINA",
	"FRANCE (INCLUDING MONACO)":      "FRANCE",
	"ITALY (INCLUDING SAN MARINO)":   "ITALY",
}

// DefaultAliases returns a fresh copy of the built-in alias table.
func DefaultAliases() map[string]string {
	return maps.Clone(defaultAliases)
}

type aliasFile struct {
	Aliases map[string]string `toml:"aliases"`
}

// LoadAliases reads a replacement alias table from a TOML file of the form
//
//	[aliases]
//	"Korea, Rep." = "REPUBLIC OF KOREA"
func LoadAliases(path string) (map[string]string, error) {
	var f aliasFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("config: decode aliases %q: %w", path, err)
	}
	if len(f.Aliases) == 0 {
		return nil, fmt.Errorf("config: aliases %q: no [aliases] entries", path)
	}
	return f.Aliases, nil
}

// ResolveAliases returns the table named by path, or the built-in table when
// path is empty.
func ResolveAliases(path string) (map[string]string, error) {
	if path == "" {
		return DefaultAliases(), nil
	}
	return LoadAliases(path)
}
