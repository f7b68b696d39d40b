package availability

import (
	"testing"

	"campreserv/pkg/model"
)

func intp(v int) *int { return &v }

func testSites() []*model.Site {
	return []*model.Site{
		{ID: "s-1", SiteType: model.SiteTypeRV, SiteClassID: "c-rv", Status: model.SiteStatusAvailable, RigMaxLengthFt: intp(40)},
		{ID: "s-2", SiteType: model.SiteTypeRV, SiteClassID: "c-rv", Status: model.SiteStatusAvailable},
		{ID: "s-3", SiteType: model.SiteTypeRV, SiteClassID: "c-rv", Status: model.SiteStatusBooked, RigMaxLengthFt: intp(45)},
		{ID: "s-4", SiteType: model.SiteTypeTent, SiteClassID: "c-tent", Status: model.SiteStatusAvailable},
		{ID: "s-5", SiteType: model.SiteTypeCabin, SiteClassID: "c-cabin", Status: model.SiteStatusHeld},
		{ID: "s-6", SiteType: model.SiteTypeGlamping, SiteClassID: "c-glamp", Status: model.SiteStatusAvailable},
	}
}

func testClasses() []*model.SiteClass {
	return []*model.SiteClass{
		{ID: "c-rv", Name: "Pull-Through RV", RigMaxLengthFt: intp(35)},
		{ID: "c-tent", Name: "Walk-In Tent"},
		{ID: "c-cabin", Name: "Cabin"},
		{ID: "c-glamp", Name: "Glamping"},
	}
}

func ids(sites []*model.Site) []string {
	out := make([]string, len(sites))
	for i, s := range sites {
		out[i] = s.ID
	}
	return out
}

func assertIDs(t *testing.T, got []*model.Site, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
	for i, s := range got {
		if s.ID != want[i] {
			t.Fatalf("got %v, want %v", ids(got), want)
		}
	}
}

func TestCompatibleSiteTypes(t *testing.T) {
	tests := []struct {
		rigType string
		want    []string
	}{
		{model.RigTypeMotorhome, []string{model.SiteTypeRV}},
		{model.RigTypeTravelTrlr, []string{model.SiteTypeRV}},
		{model.RigTypeFifthWheel, []string{model.SiteTypeRV}},
		{model.RigTypeCamperVan, []string{model.SiteTypeRV}},
		{model.RigTypeTent, []string{model.SiteTypeTent}},
		{model.RigTypeCabin, []string{model.SiteTypeCabin, model.SiteTypeGlamping}},
		{model.RigTypeGroup, []string{model.SiteTypeGroup}},
	}

	for _, tt := range tests {
		t.Run(tt.rigType, func(t *testing.T) {
			compat := CompatibleSiteTypes(tt.rigType)
			if len(compat) != len(tt.want) {
				t.Fatalf("compat = %v, want %v", compat, tt.want)
			}
			for _, siteType := range tt.want {
				if !compat[siteType] {
					t.Errorf("compat = %v, missing %q", compat, siteType)
				}
			}
		})
	}

	if CompatibleSiteTypes("") != nil {
		t.Errorf("empty rig type should impose no restriction")
	}
	if CompatibleSiteTypes("houseboat") != nil {
		t.Errorf("unknown rig type should impose no restriction")
	}
}

func TestResolveNoFilters(t *testing.T) {
	got := Resolve(testSites(), model.SiteFilters{}, testClasses())
	assertIDs(t, got, "s-1", "s-2", "s-3", "s-4", "s-5", "s-6")
}

func TestResolveAvailableOnly(t *testing.T) {
	got := Resolve(testSites(), model.SiteFilters{AvailableOnly: true}, testClasses())
	assertIDs(t, got, "s-1", "s-2", "s-4", "s-6")
}

func TestResolveSiteTypeFilter(t *testing.T) {
	got := Resolve(testSites(), model.SiteFilters{SiteType: "RV"}, testClasses())
	assertIDs(t, got, "s-1", "s-2", "s-3")

	// "all" is the no-restriction sentinel.
	got = Resolve(testSites(), model.SiteFilters{SiteType: model.FilterAll}, testClasses())
	assertIDs(t, got, "s-1", "s-2", "s-3", "s-4", "s-5", "s-6")
}

func TestResolveRigCompatibility(t *testing.T) {
	got := Resolve(testSites(), model.SiteFilters{RigType: model.RigTypeMotorhome}, testClasses())
	assertIDs(t, got, "s-1", "s-2", "s-3")

	// A cabin rig matches both cabin and glamping sites.
	got = Resolve(testSites(), model.SiteFilters{RigType: model.RigTypeCabin}, testClasses())
	assertIDs(t, got, "s-5", "s-6")
}

func TestResolveRigLength(t *testing.T) {
	// Site ceiling wins over the class default; a site with neither its own
	// nor a class ceiling is unrestricted.
	classes := []*model.SiteClass{
		{ID: "c-rv", RigMaxLengthFt: intp(35)},
		{ID: "c-open"},
	}
	sites := []*model.Site{
		{ID: "s-own", SiteType: model.SiteTypeRV, SiteClassID: "c-rv", RigMaxLengthFt: intp(40)},
		{ID: "s-class", SiteType: model.SiteTypeRV, SiteClassID: "c-rv"},
		{ID: "s-open", SiteType: model.SiteTypeRV, SiteClassID: "c-open"},
	}

	got := Resolve(sites, model.SiteFilters{RigType: model.RigTypeFifthWheel, RigLengthFt: 38}, classes)
	assertIDs(t, got, "s-own", "s-open")

	// At exactly the ceiling the site still fits.
	got = Resolve(sites, model.SiteFilters{RigType: model.RigTypeFifthWheel, RigLengthFt: 35}, classes)
	assertIDs(t, got, "s-own", "s-class", "s-open")
}

func TestResolveRigLengthOnlyAppliesToRVSearches(t *testing.T) {
	sites := []*model.Site{
		{ID: "s-tent", SiteType: model.SiteTypeTent, SiteClassID: "c-tent"},
	}
	classes := []*model.SiteClass{{ID: "c-tent", RigMaxLengthFt: intp(10)}}

	// A tent search ignores the rig length even when one is set.
	got := Resolve(sites, model.SiteFilters{RigType: model.RigTypeTent, RigLengthFt: 30}, classes)
	assertIDs(t, got, "s-tent")

	// No rig type at all: length is ignored too.
	got = Resolve(sites, model.SiteFilters{RigLengthFt: 30}, classes)
	assertIDs(t, got, "s-tent")
}

func TestResolveCombinedFilters(t *testing.T) {
	got := Resolve(testSites(), model.SiteFilters{
		AvailableOnly: true,
		RigType:       model.RigTypeTravelTrlr,
		RigLengthFt:   38,
	}, testClasses())

	// s-1 fits under its own 40ft ceiling; s-2 falls back to the 35ft class
	// ceiling and is excluded; s-3 is booked.
	assertIDs(t, got, "s-1")
}
