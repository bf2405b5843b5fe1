package library

import "strings"

// Record is a single library from the reference dataset. Records are
// immutable once loaded.
type Record struct {
	Name     string
	Address  string
	Code     string
	Region   string
	District string
}

// regionNames is the fixed, ordered whitelist of top-level administrative
// divisions recognized in addresses. An address must start with one of these
// for the record to be indexable by region.
var regionNames = []string{
	"서울특별시",
	"부산광역시",
	"대구광역시",
	"인천광역시",
	"광주광역시",
	"대전광역시",
	"울산광역시",
	"세종특별자치시",
	"경기도",
	"강원도",
	"충청북도",
	"충청남도",
	"전라북도",
	"전라남도",
	"경상북도",
	"경상남도",
	"제주특별자치도",
}

// SplitAddress extracts the region and district from a structured address.
// The region must be one of the known top-level divisions at the very start
// of the address; the district is the next whitespace-delimited token.
// Anything else yields two empty strings.
func SplitAddress(addr string) (region, district string) {
	for _, name := range regionNames {
		rest, ok := strings.CutPrefix(addr, name)
		if !ok {
			continue
		}

		// The region name must be followed by whitespace and a district token.
		trimmed := strings.TrimLeft(rest, " \t")
		if trimmed == rest {
			return "", ""
		}

		fields := strings.Fields(trimmed)
		if len(fields) == 0 {
			return "", ""
		}

		return name, fields[0]
	}

	return "", ""
}
