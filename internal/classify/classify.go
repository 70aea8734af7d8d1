// Package classify infers a coarse product category for a job from its
// employer text.
package classify

import (
	"strings"

	"github.com/Soubhagyabehera/easyapply/internal/models"
)

// categoryTable is scanned in order; the first category with a keyword
// hit wins. The order is the product's defined category list, so ties
// resolve the same way on every call.
var categoryTable = []struct {
	id       models.CategoryID
	keywords []string
}{
	{models.CategoryBanking, []string{"bank", "sbi", "rbi", "ibps", "nabard"}},
	{models.CategoryRailway, []string{"railway", "metro", "rrb", "irctc"}},
	{models.CategorySSC, []string{"ssc", "staff selection"}},
	{models.CategoryUPSC, []string{"upsc", "civil"}},
	{models.CategoryDefense, []string{"army", "navy", "air force", "defence", "coast guard"}},
	{models.CategoryTeaching, []string{"teacher", "teaching", "school", "education", "university", "vidyalaya"}},
	{models.CategoryPolice, []string{"police", "constable", "crpf", "cisf", "bsf"}},
	{models.CategoryHealthcare, []string{"hospital", "medical", "health", "aiims", "nursing"}},
}

// Classify matches the employer text case-insensitively against the
// category keyword table. Empty text is uncategorized, never a default
// category.
func Classify(organizationText string) models.CategoryID {
	text := strings.ToLower(strings.TrimSpace(organizationText))
	if text == "" {
		return models.CategoryUnknown
	}

	for _, entry := range categoryTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.id
			}
		}
	}
	return models.CategoryUnknown
}

// Categories returns the fixed category order used by the listing UI's
// filter buttons.
func Categories() []models.CategoryID {
	out := make([]models.CategoryID, 0, len(categoryTable))
	for _, entry := range categoryTable {
		out = append(out, entry.id)
	}
	return out
}
