package country

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// Record is one country object as returned by the REST Countries API.
// Only the fields requested via the fields= selector are populated.
type Record struct {
	Name        Name        `json:"name"`
	Capital     []string    `json:"capital"`
	Region      string      `json:"region"`
	Subregion   string      `json:"subregion"`
	LatLng      []float64   `json:"latlng"`
	CapitalInfo CapitalInfo `json:"capitalInfo"`
	Flag        string      `json:"flag"`
	Population  int64       `json:"population"`
	Timezones   []string    `json:"timezones"`
	TLD         []string    `json:"tld"`
	Languages   Languages   `json:"languages"`
	Currencies  Currencies  `json:"currencies"`
	Borders     []string    `json:"borders"` // nil when the API sends null or omits it
	Landlocked  bool        `json:"landlocked"`
	StartOfWeek string      `json:"startOfWeek"`
	Continents  []string    `json:"continents"`
	Maps        Maps        `json:"maps"`
}

type Name struct {
	Common   string `json:"common,omitempty"`
	Official string `json:"official"`
}

type CapitalInfo struct {
	LatLng []float64 `json:"latlng"`
}

type Maps struct {
	GoogleMaps     string `json:"googleMaps,omitempty"`
	OpenStreetMaps string `json:"openStreetMaps"`
}

// Language is one entry of the API's {code: name} languages object.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Languages keeps the entries in the order the API sent them.
type Languages []Language

// UnmarshalJSON walks the object with gjson so key order survives;
// a Go map would lose it.
func (l *Languages) UnmarshalJSON(b []byte) error {
	res, err := parseObject(b, "languages")
	if err != nil {
		return err
	}
	if res.Type == gjson.Null {
		*l = nil
		return nil
	}
	out := Languages{}
	res.ForEach(func(key, value gjson.Result) bool {
		out = append(out, Language{Code: key.String(), Name: value.String()})
		return true
	})
	*l = out
	return nil
}

// Currency is one entry of the API's {code: {name, symbol}} currencies object.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Currencies keeps the entries in the order the API sent them.
type Currencies []Currency

func (c *Currencies) UnmarshalJSON(b []byte) error {
	res, err := parseObject(b, "currencies")
	if err != nil {
		return err
	}
	if res.Type == gjson.Null {
		*c = nil
		return nil
	}
	out := Currencies{}
	res.ForEach(func(key, value gjson.Result) bool {
		out = append(out, Currency{
			Code:   key.String(),
			Name:   value.Get("name").String(),
			Symbol: value.Get("symbol").String(),
		})
		return true
	})
	*c = out
	return nil
}

func parseObject(b []byte, field string) (gjson.Result, error) {
	if !gjson.ValidBytes(b) {
		return gjson.Result{}, fmt.Errorf("invalid '%s' field", field)
	}
	res := gjson.ParseBytes(b)
	if res.Type != gjson.Null && !res.IsObject() {
		return gjson.Result{}, fmt.Errorf("invalid '%s' field: expected object", field)
	}
	return res, nil
}

// Decode reads a JSON array of country records. Anything other than an
// array (an object, a bare string, truncated input) is an error.
func Decode(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return records, nil
}
