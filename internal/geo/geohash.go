package geo

// 文档注释：geohash 编码（base32）
// 背景：文档点位入库时写入 geohash 列，邻近查询按前缀匹配；精度 6 约 1.2km，9 约 5m。
const geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// Geohash：精度取值 1..12，越界时截断
func Geohash(lat, lon float64, precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > 12 {
		precision = 12
	}
	latLo, latHi := -90.0, 90.0
	lonLo, lonHi := -180.0, 180.0
	out := make([]byte, 0, precision)
	even := true
	bit, ch := 0, 0
	for len(out) < precision {
		ch <<= 1
		if even {
			mid := (lonLo + lonHi) / 2
			if lon >= mid {
				ch |= 1
				lonLo = mid
			} else {
				lonHi = mid
			}
		} else {
			mid := (latLo + latHi) / 2
			if lat >= mid {
				ch |= 1
				latLo = mid
			} else {
				latHi = mid
			}
		}
		even = !even
		if bit++; bit == 5 {
			out = append(out, geohashAlphabet[ch])
			bit, ch = 0, 0
		}
	}
	return string(out)
}
