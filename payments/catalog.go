package payments

import (
	"sort"
	"strconv"
)

const (
	// BundleCourseID is the catalog entry that denotes simultaneous
	// purchase of all individual courses.
	BundleCourseID = 17
	// BundleMetadataMarker is the literal value the checkout metadata
	// carries for a bundle purchase.
	BundleMetadataMarker = "full_access"
)

// Catalog is the immutable mapping between course IDs and Stripe price IDs,
// defined at deploy time. One designated entry is the full-access bundle,
// which expands to every individual course.
type Catalog struct {
	priceByCourse map[int]string
	courseByPrice map[string]int
	bundleID      int
}

// NewCatalog builds a catalog from a course→price mapping and the bundle
// course ID. The reverse price→course mapping is derived.
func NewCatalog(priceByCourse map[int]string, bundleID int) *Catalog {
	courseByPrice := make(map[string]int, len(priceByCourse))
	for courseID, priceID := range priceByCourse {
		courseByPrice[priceID] = courseID
	}
	return &Catalog{
		priceByCourse: priceByCourse,
		courseByPrice: courseByPrice,
		bundleID:      bundleID,
	}
}

// DefaultCatalog returns the compiled-in catalog of the 16 individual
// courses plus the full-access bundle entry.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[int]string{
		1:  "price_1RtPFoJLuu6b086bmfvVO4G8",
		2:  "price_1RtPGOJLuu6b086b1QN5l4DE",
		3:  "price_1Rgt0yJLuu6b086b115h7OXM",
		4:  "price_1RtPKTJLuu6b086b3wG0IiaV",
		5:  "price_1RtPKkJLuu6b086b2lfhBfDX",
		6:  "price_1RtPL2JLuu6b086bLl03p2R9",
		7:  "price_1RtPLlJLuu6b086bbJxG1bqw",
		8:  "price_1RgqlFJLuu6b086bf2Wl2bUg",
		9:  "price_1RtPMCJLuu6b086bV3Zk0il6",
		10: "price_1Rgt1HJLuu6b086bmNgENAIM",
		11: "price_1RtPNJJLuu6b086bBejuPL2T",
		12: "price_1RtPNdJLuu6b086bjn7p0Wsn",
		13: "price_1RtPORJLuu6b086b1yxr0voQ",
		14: "price_1Rgt1TJLuu6b086bNn14JbJa",
		15: "price_1Rgt1lJLuu6b086bk3TJqFzM",
		16: "price_1Rgt21JLuu6b086bTBuO2djx",
		17: "price_1RtPPaJLuu6b086bdmWNAsGI", // full-access bundle
	}, BundleCourseID)
}

// PriceForCourse returns the Stripe price ID paired with the given course.
func (c *Catalog) PriceForCourse(courseID int) (string, bool) {
	priceID, ok := c.priceByCourse[courseID]
	return priceID, ok
}

// CourseForPrice returns the course ID paired with the given Stripe price.
func (c *Catalog) CourseForPrice(priceID string) (int, bool) {
	courseID, ok := c.courseByPrice[priceID]
	return courseID, ok
}

// Courses returns all individual course IDs, sorted, excluding the bundle
// entry.
func (c *Catalog) Courses() []int {
	courses := make([]int, 0, len(c.priceByCourse))
	for courseID := range c.priceByCourse {
		if courseID == c.bundleID {
			continue
		}
		courses = append(courses, courseID)
	}
	sort.Ints(courses)
	return courses
}

// ResolvePrice maps a Stripe price ID to the set of course IDs it grants:
// the full catalog for the bundle price, a singleton for an individual
// course price and nil for an unmapped price.
func (c *Catalog) ResolvePrice(priceID string) []int {
	courseID, ok := c.courseByPrice[priceID]
	if !ok {
		return nil
	}
	if courseID == c.bundleID {
		return c.Courses()
	}
	return []int{courseID}
}

// ResolveMetadata maps the courseId metadata value of a checkout session to
// a course set. This is the fallback path used when the price of the
// session's line item is unmapped: the bundle marker yields the full
// catalog, a numeric value yields that singleton and anything else yields
// nil.
func (c *Catalog) ResolveMetadata(value string) []int {
	if value == BundleMetadataMarker {
		return c.Courses()
	}
	courseID, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return []int{courseID}
}
