package country

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Field is one labelled cell of the rendered grid.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Link  string `json:"link,omitempty"`
}

// Labels in display order.
const (
	LabelOfficialName  = "Official Name"
	LabelCapital       = "Capital"
	LabelRegion        = "Region"
	LabelSubregion     = "Subregion"
	LabelLatLng        = "LatLng"
	LabelCapitalLatLng = "Capital LatLng"
	LabelTimezones     = "Timezones"
	LabelTLD           = "TLD"
	LabelPopulation    = "Population"
	LabelBorders       = "Borders"
	LabelLanguages     = "Languages"
	LabelCurrencies    = "Currencies"
	LabelLandlocked    = "Landlocked"
	LabelStartOfWeek   = "Start of Week"
	LabelContinents    = "Continents"
	LabelMaps          = "Maps"
)

// MapsLinkText is shown in place of the raw OpenStreetMap URL.
const MapsLinkText = "OpenStreetMaps"

// Fields maps a record onto the sixteen grid cells. Values are rendered
// close to verbatim; nothing is normalized.
func Fields(r Record) []Field {
	return []Field{
		{Label: LabelOfficialName, Value: r.Name.Official + " " + r.Flag},
		{Label: LabelCapital, Value: first(r.Capital)},
		{Label: LabelRegion, Value: r.Region},
		{Label: LabelSubregion, Value: r.Subregion},
		{Label: LabelLatLng, Value: formatLatLng(r.LatLng)},
		{Label: LabelCapitalLatLng, Value: formatLatLng(r.CapitalInfo.LatLng)},
		{Label: LabelTimezones, Value: strings.Join(r.Timezones, " ")},
		{Label: LabelTLD, Value: strings.Join(r.TLD, " ")},
		{Label: LabelPopulation, Value: FormatPopulation(r.Population)},
		{Label: LabelBorders, Value: formatBorders(r.Borders)},
		{Label: LabelLanguages, Value: formatLanguages(r.Languages)},
		{Label: LabelCurrencies, Value: formatCurrencies(r.Currencies)},
		{Label: LabelLandlocked, Value: yesNo(r.Landlocked)},
		{Label: LabelStartOfWeek, Value: r.StartOfWeek},
		{Label: LabelContinents, Value: strings.Join(r.Continents, " ")},
		{Label: LabelMaps, Value: MapsLinkText, Link: r.Maps.OpenStreetMaps},
	}
}

// FormatPopulation groups digits the en-US way: 125836021 -> "125,836,021".
func FormatPopulation(n int64) string {
	// message.Printer keeps per-call scratch state, so one per call.
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprintf("%d", n)
}

func first(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}

// formatLatLng prints "lat/lng" using the shortest decimal form, so 36.0
// reads "36" and 35.68 reads "35.68".
func formatLatLng(ll []float64) string {
	var lat, lng string
	if len(ll) > 0 {
		lat = strconv.FormatFloat(ll[0], 'f', -1, 64)
	}
	if len(ll) > 1 {
		lng = strconv.FormatFloat(ll[1], 'f', -1, 64)
	}
	return lat + "/" + lng
}

func formatBorders(borders []string) string {
	if borders == nil {
		return "None"
	}
	return strings.Join(borders, " ")
}

func formatLanguages(langs Languages) string {
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, l.Name)
	}
	return strings.Join(names, " ")
}

func formatCurrencies(cs Currencies) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, c.Name+" ("+c.Symbol+")")
	}
	return strings.Join(parts, " ")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
