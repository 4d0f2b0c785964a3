package engine

import (
	"strings"

	"github.com/paradoxe/paradoxe/internal/models"
)

// ContainmentBanner heads every rendered evaluation, whatever the
// outcome. Validators key on the "CONTAINMENT ACTIVE" marker.
const ContainmentBanner = "⛔ CONTAINMENT ACTIVE — Paradoxe Safety Layer"

// bannerCategories is the fixed display order.
var bannerCategories = []models.FindingCategory{
	models.CategoryRoleConfusion,
	models.CategoryEscalation,
	models.CategoryAnomaly,
	models.CategoryMutation,
	models.CategoryLeakBaiting,
}

// Banner renders the containment header. It is a pure function of the
// guard report's categories and is independent of the resolver outcome.
func Banner(report models.GuardReport) string {
	var b strings.Builder
	b.WriteString(ContainmentBanner)
	for _, cat := range bannerCategories {
		b.WriteString("\n- ")
		b.WriteString(string(cat))
		b.WriteString(": ")
		if report.Matched(cat) {
			b.WriteString("HIT")
		} else {
			b.WriteString("clear")
		}
	}
	return b.String()
}
