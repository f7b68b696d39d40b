package availability

import (
	"strings"

	"campreserv/pkg/model"
)

// CompatibleSiteTypes derives the set of site types a rig can occupy. The
// RV sub-types all collapse to {rv}; an unknown or empty rig type imposes
// no restriction (nil).
func CompatibleSiteTypes(rigType string) map[string]bool {
	switch rigType {
	case model.RigTypeMotorhome, model.RigTypeTravelTrlr, model.RigTypeFifthWheel, model.RigTypeCamperVan:
		return map[string]bool{model.SiteTypeRV: true}
	case model.RigTypeTent:
		return map[string]bool{model.SiteTypeTent: true}
	case model.RigTypeCabin:
		return map[string]bool{model.SiteTypeCabin: true, model.SiteTypeGlamping: true}
	case model.RigTypeGroup:
		return map[string]bool{model.SiteTypeGroup: true}
	default:
		return nil
	}
}

// Resolve filters the site-status list down to the sites matching every
// active filter. It is a pure filter: input order is preserved and no
// ranking is applied.
func Resolve(sites []*model.Site, filters model.SiteFilters, classes []*model.SiteClass) []*model.Site {
	compat := CompatibleSiteTypes(filters.RigType)

	classCeiling := make(map[string]*int, len(classes))
	for _, class := range classes {
		classCeiling[class.ID] = class.RigMaxLengthFt
	}

	filtered := make([]*model.Site, 0, len(sites))
	for _, site := range sites {
		if filters.AvailableOnly && site.Status != model.SiteStatusAvailable {
			continue
		}

		if filterActive(filters.SiteType) && !strings.EqualFold(site.SiteType, filters.SiteType) {
			continue
		}

		if filterActive(filters.SiteClassID) && site.SiteClassID != filters.SiteClassID {
			continue
		}

		if compat != nil && !compat[site.SiteType] {
			continue
		}

		// The rig length ceiling only applies on RV-compatible searches.
		// A site's own ceiling wins over the class default; a nil ceiling
		// means unrestricted.
		if filters.RigLengthFt > 0 && compat != nil && compat[model.SiteTypeRV] {
			ceiling := site.RigMaxLengthFt
			if ceiling == nil {
				ceiling = classCeiling[site.SiteClassID]
			}
			if ceiling != nil && *ceiling < filters.RigLengthFt {
				continue
			}
		}

		filtered = append(filtered, site)
	}

	return filtered
}

func filterActive(value string) bool {
	return value != "" && value != model.FilterAll
}
