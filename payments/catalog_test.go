package payments

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestCatalogResolvePrice(t *testing.T) {
	c := qt.New(t)
	catalog := DefaultCatalog()

	// an individual course price resolves to a singleton
	priceID, ok := catalog.PriceForCourse(8)
	c.Assert(ok, qt.IsTrue)
	c.Assert(catalog.ResolvePrice(priceID), qt.DeepEquals, []int{8})

	// the bundle price expands to the full catalog minus the bundle entry
	bundlePrice, ok := catalog.PriceForCourse(BundleCourseID)
	c.Assert(ok, qt.IsTrue)
	courses := catalog.ResolvePrice(bundlePrice)
	c.Assert(courses, qt.HasLen, 16)
	for i, courseID := range courses {
		c.Assert(courseID, qt.Equals, i+1)
	}

	// an unmapped price resolves to nothing
	c.Assert(catalog.ResolvePrice("price_unknown"), qt.HasLen, 0)
}

func TestCatalogResolveMetadata(t *testing.T) {
	c := qt.New(t)
	catalog := DefaultCatalog()

	// the bundle marker expands to the full catalog
	c.Assert(catalog.ResolveMetadata(BundleMetadataMarker), qt.HasLen, 16)
	// a numeric value yields that singleton
	c.Assert(catalog.ResolveMetadata("5"), qt.DeepEquals, []int{5})
	// anything else yields nothing
	c.Assert(catalog.ResolveMetadata(""), qt.HasLen, 0)
	c.Assert(catalog.ResolveMetadata("not-a-course"), qt.HasLen, 0)
}

func TestCatalogCourseForPrice(t *testing.T) {
	c := qt.New(t)
	catalog := NewCatalog(map[int]string{
		1: "price_a",
		2: "price_b",
		3: "price_all",
	}, 3)

	courseID, ok := catalog.CourseForPrice("price_b")
	c.Assert(ok, qt.IsTrue)
	c.Assert(courseID, qt.Equals, 2)

	_, ok = catalog.CourseForPrice("price_c")
	c.Assert(ok, qt.IsFalse)

	c.Assert(catalog.Courses(), qt.DeepEquals, []int{1, 2})
	c.Assert(catalog.ResolvePrice("price_all"), qt.DeepEquals, []int{1, 2})
}
