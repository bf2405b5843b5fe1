package library

import "sort"

// Index answers region/district/code lookups over a loaded set of library
// records. It is built once and read-only afterwards, so it is safe for
// unsynchronized concurrent reads.
type Index struct {
	byCode            map[string]Record
	regions           []string
	districtsByRegion map[string][]string
	byRegionDistrict  map[string][]Record
}

// GroupKey is the "region|district" key used to group libraries.
func GroupKey(region, district string) string {
	return region + "|" + district
}

// NewIndex builds an Index from records. Records whose address did not match
// a known region stay reachable by code but are excluded from region-based
// grouping.
func NewIndex(records []Record) *Index {
	ix := &Index{
		byCode:            make(map[string]Record, len(records)),
		regions:           []string{},
		districtsByRegion: make(map[string][]string),
		byRegionDistrict:  make(map[string][]Record),
	}

	regionSet := make(map[string]struct{})
	districtSets := make(map[string]map[string]struct{})

	for _, rec := range records {
		ix.byCode[rec.Code] = rec

		if rec.Region == "" {
			continue
		}

		regionSet[rec.Region] = struct{}{}

		if rec.District != "" {
			if districtSets[rec.Region] == nil {
				districtSets[rec.Region] = make(map[string]struct{})
			}

			districtSets[rec.Region][rec.District] = struct{}{}
		}

		key := GroupKey(rec.Region, rec.District)
		ix.byRegionDistrict[key] = append(ix.byRegionDistrict[key], rec)
	}

	for region := range regionSet {
		ix.regions = append(ix.regions, region)
	}

	sort.Strings(ix.regions)

	for region, set := range districtSets {
		districts := make([]string, 0, len(set))
		for district := range set {
			districts = append(districts, district)
		}

		sort.Strings(districts)
		ix.districtsByRegion[region] = districts
	}

	return ix
}

// LookupByCode returns the record with the given library code.
func (ix *Index) LookupByCode(code string) (Record, bool) {
	rec, ok := ix.byCode[code]

	return rec, ok
}

// Regions returns the distinct non-empty regions, alphabetically sorted.
func (ix *Index) Regions() []string {
	return ix.regions
}

// Districts returns the distinct non-empty districts within a region,
// alphabetically sorted.
func (ix *Index) Districts(region string) []string {
	districts, ok := ix.districtsByRegion[region]
	if !ok {
		return []string{}
	}

	return districts
}

// LibrariesIn returns the records for a region and district in dataset order.
func (ix *Index) LibrariesIn(region, district string) []Record {
	return ix.byRegionDistrict[GroupKey(region, district)]
}

// Len returns the number of loaded records.
func (ix *Index) Len() int {
	return len(ix.byCode)
}
