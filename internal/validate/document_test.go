package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiruna-explorer/internal/geo"
	"kiruna-explorer/internal/model"
)

func kiruna(t *testing.T) *geo.Boundary {
	t.Helper()
	b, err := geo.LoadBoundaryFile("kiruna", "../geo/testdata/kiruna.geojson")
	require.NoError(t, err)
	return b
}

func fixture() model.Document {
	lat, lon := 67.8558, 20.2732
	pages := 42
	return model.Document{
		Title:        "New document",
		Stakeholders: []string{"Kiruna kommun"},
		Scale:        "1:8000",
		IssuanceDate: "2020-10-05",
		Type:         "Prescriptive document",
		NrPages:      &pages,
		Geolocation:  model.Geolocation{Latitude: &lat, Longitude: &lon},
	}
}

func TestDocumentFixtureValid(t *testing.T) {
	errs := Document(fixture(), kiruna(t))
	assert.Empty(t, errs)
	assert.True(t, errs.Valid())
}

func TestDocumentFieldErrors(t *testing.T) {
	b := kiruna(t)

	d := fixture()
	d.Title = ""
	assert.Equal(t, ErrTitleRequired.Error(), Document(d, b)["title"])

	d = fixture()
	d.Stakeholders = []string{}
	assert.Equal(t, ErrStakeholdersRequired.Error(), Document(d, b)["stakeholders"])

	d = fixture()
	d.Scale = "casa dolce casa"
	errs := Document(d, b)
	assert.NotEmpty(t, errs["scale"])
	assert.Len(t, errs, 1)
}

func TestDocumentGeolocationOutside(t *testing.T) {
	d := fixture()
	lat, lon := 59.3293, 18.0686
	d.Geolocation = model.Geolocation{Latitude: &lat, Longitude: &lon}
	errs := Document(d, kiruna(t))
	assert.Equal(t, ErrOutsideBoundary.Error(), errs["geolocation.latitude"])
	assert.Equal(t, ErrOutsideBoundary.Error(), errs["geolocation.longitude"])
}

func TestGeolocation(t *testing.T) {
	b := kiruna(t)
	lat, lon := 67.8558, 20.2732

	assert.Empty(t, Geolocation(model.Geolocation{}, b))
	assert.Empty(t, Geolocation(model.Geolocation{Municipality: model.EntireMunicipality}, b))
	assert.Empty(t, Geolocation(model.Geolocation{Latitude: &lat, Longitude: &lon}, b))

	both := Geolocation(model.Geolocation{Latitude: &lat, Longitude: &lon, Municipality: model.EntireMunicipality}, b)
	assert.Equal(t, ErrGeolocationConflict.Error(), both["municipality"])
	assert.NotContains(t, both, "latitude")

	onlyLat := Geolocation(model.Geolocation{Latitude: &lat}, b)
	assert.Equal(t, ErrCoordinateMissing.Error(), onlyLat["longitude"])

	onlyLon := Geolocation(model.Geolocation{Longitude: &lon, Municipality: model.EntireMunicipality}, b)
	assert.Equal(t, ErrCoordinateMissing.Error(), onlyLon["latitude"])
	assert.Equal(t, ErrGeolocationConflict.Error(), onlyLon["municipality"])

	assert.Equal(t, ErrMunicipalityUnknown.Error(), Geolocation(model.Geolocation{Municipality: "Gällivare"}, b)["municipality"])

	noRegion := Geolocation(model.Geolocation{Latitude: &lat, Longitude: &lon}, nil)
	assert.Len(t, noRegion, 2)
}

func TestGeolocationEdgeIsInside(t *testing.T) {
	sq := &geo.Boundary{Polys: []geo.Polygon{geo.NewPolygon([]geo.Point{
		{Lat: 0, Lon: 0}, {Lat: 0, Lon: 10}, {Lat: 10, Lon: 10}, {Lat: 10, Lon: 0},
	})}}
	lat, lon := 0.0, 5.0
	assert.Empty(t, Geolocation(model.Geolocation{Latitude: &lat, Longitude: &lon}, sq))
}
