package validate

import (
	"kiruna-explorer/internal/geo"
	"kiruna-explorer/internal/model"
)

// 文档注释：地理位置校验
// 背景：点位必须落在市镇边界内（含边界）；点位与“整个市镇”互斥。
// 约束：返回子错误表，键为 latitude/longitude/municipality；region 为 nil 时任何点位都视为越界。
func Geolocation(g model.Geolocation, region geo.Region) map[string]string {
	errs := map[string]string{}
	lat, lon := g.Latitude != nil, g.Longitude != nil

	switch {
	case lat && lon:
		if region == nil || !region.Contains(geo.Point{Lat: *g.Latitude, Lon: *g.Longitude}) {
			errs["latitude"] = ErrOutsideBoundary.Error()
			errs["longitude"] = ErrOutsideBoundary.Error()
		}
	case lat:
		errs["longitude"] = ErrCoordinateMissing.Error()
	case lon:
		errs["latitude"] = ErrCoordinateMissing.Error()
	}

	switch {
	case (lat || lon) && g.IsEntireMunicipality():
		errs["municipality"] = ErrGeolocationConflict.Error()
	case g.Municipality != "" && !g.IsEntireMunicipality():
		errs["municipality"] = ErrMunicipalityUnknown.Error()
	}
	return errs
}
