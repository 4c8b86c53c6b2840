package country

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const japanJSON = `[{
  "name": {"common": "Japan", "official": "Japan", "nativeName": {"jpn": {"official": "日本", "common": "日本"}}},
  "capital": ["Tokyo"],
  "region": "Asia",
  "subregion": "Eastern Asia",
  "latlng": [36.0, 138.0],
  "capitalInfo": {"latlng": [35.68, 139.75]},
  "flag": "🇯🇵",
  "population": 125836021,
  "timezones": ["UTC+09:00"],
  "tld": [".jp", ".みんな"],
  "languages": {"jpn": "Japanese"},
  "currencies": {"JPY": {"name": "Japanese yen", "symbol": "¥"}},
  "borders": [],
  "landlocked": false,
  "startOfWeek": "monday",
  "continents": ["Asia"],
  "maps": {"googleMaps": "https://goo.gl/maps/NGTLSCSrA8bMrvnX9", "openStreetMaps": "https://www.openstreetmap.org/relation/382313"}
}]`

func fieldValue(t *testing.T, fields []Field, label string) Field {
	t.Helper()
	for _, f := range fields {
		if f.Label == label {
			return f
		}
	}
	t.Fatalf("no field labelled %q", label)
	return Field{}
}

func TestDecode_Japan(t *testing.T) {
	records, err := Decode(strings.NewReader(japanJSON))
	require.NoError(t, err)
	require.Len(t, records, 1)

	fields := Fields(records[0])
	require.Len(t, fields, 16)

	assert.Equal(t, "Japan 🇯🇵", fieldValue(t, fields, LabelOfficialName).Value)
	assert.Equal(t, "Tokyo", fieldValue(t, fields, LabelCapital).Value)
	assert.Equal(t, "Asia", fieldValue(t, fields, LabelRegion).Value)
	assert.Equal(t, "Eastern Asia", fieldValue(t, fields, LabelSubregion).Value)
	assert.Equal(t, "36/138", fieldValue(t, fields, LabelLatLng).Value)
	assert.Equal(t, "35.68/139.75", fieldValue(t, fields, LabelCapitalLatLng).Value)
	assert.Equal(t, "UTC+09:00", fieldValue(t, fields, LabelTimezones).Value)
	assert.Equal(t, ".jp .みんな", fieldValue(t, fields, LabelTLD).Value)
	assert.Equal(t, "125,836,021", fieldValue(t, fields, LabelPopulation).Value)
	assert.Equal(t, "", fieldValue(t, fields, LabelBorders).Value, "empty borders array renders empty, not None")
	assert.Equal(t, "Japanese", fieldValue(t, fields, LabelLanguages).Value)
	assert.Equal(t, "Japanese yen (¥)", fieldValue(t, fields, LabelCurrencies).Value)
	assert.Equal(t, "No", fieldValue(t, fields, LabelLandlocked).Value)
	assert.Equal(t, "monday", fieldValue(t, fields, LabelStartOfWeek).Value)
	assert.Equal(t, "Asia", fieldValue(t, fields, LabelContinents).Value)

	maps := fieldValue(t, fields, LabelMaps)
	assert.Equal(t, MapsLinkText, maps.Value)
	assert.Equal(t, "https://www.openstreetmap.org/relation/382313", maps.Link)
}

func TestDecode_PreservesObjectOrder(t *testing.T) {
	body := `[{
	  "name": {"official": "Swiss Confederation"},
	  "languages": {"fra": "French", "gsw": "Swiss German", "ita": "Italian", "roh": "Romansh"},
	  "currencies": {"CHF": {"name": "Swiss franc", "symbol": "Fr."}, "EUR": {"name": "Euro", "symbol": "€"}},
	  "borders": null,
	  "landlocked": true
	}]`

	records, err := Decode(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, records, 1)

	fields := Fields(records[0])
	assert.Equal(t, "French Swiss German Italian Romansh", fieldValue(t, fields, LabelLanguages).Value)
	assert.Equal(t, "Swiss franc (Fr.) Euro (€)", fieldValue(t, fields, LabelCurrencies).Value)
	assert.Equal(t, "None", fieldValue(t, fields, LabelBorders).Value)
	assert.Equal(t, "Yes", fieldValue(t, fields, LabelLandlocked).Value)
}

func TestDecode_MissingOptionalFields(t *testing.T) {
	records, err := Decode(strings.NewReader(`[{"name":{"official":"Antarctica"},"continents":null}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)

	fields := Fields(records[0])
	assert.Equal(t, "", fieldValue(t, fields, LabelCapital).Value)
	assert.Equal(t, "/", fieldValue(t, fields, LabelLatLng).Value)
	assert.Equal(t, "None", fieldValue(t, fields, LabelBorders).Value)
	assert.Equal(t, "", fieldValue(t, fields, LabelContinents).Value)
	assert.Equal(t, "0", fieldValue(t, fields, LabelPopulation).Value)
}

func TestDecode_EmptyArray(t *testing.T) {
	records, err := Decode(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"truncated", `[{"name": "Germany"`},
		{"not json", `<html>oops</html>`},
		{"object instead of array", `{"status": 404, "message": "Not Found"}`},
		{"languages not an object", `[{"languages": ["jpn"]}]`},
		{"currencies not an object", `[{"currencies": "JPY"}]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.body))
			assert.Error(t, err)
		})
	}
}

func TestFormatPopulation(t *testing.T) {
	assert.Equal(t, "0", FormatPopulation(0))
	assert.Equal(t, "999", FormatPopulation(999))
	assert.Equal(t, "1,000", FormatPopulation(1000))
	assert.Equal(t, "83,240,525", FormatPopulation(83240525))
	assert.Equal(t, "1,402,112,000", FormatPopulation(1402112000))
}
