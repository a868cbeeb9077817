package cli

import (
	"fmt"
	"strings"

	"github.com/flowlytics/basket-sift/internal/model"
)

// topRuleCount bounds how many rules the terminal summary shows; the full
// list goes to the exported artifacts.
const topRuleCount = 10

// RenderSummary formats a mining report for the terminal: the headline
// counters plus the top rules by rank.
func RenderSummary(report *model.Report, meta model.RunMeta) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Market Basket Analysis"))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("source: %s  min_support: %.4g  min_confidence: %.4g",
		meta.SourceFile, meta.MinSupport, meta.MinConfidence)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Transactions:      %d\n", report.TransactionCount))
	b.WriteString(fmt.Sprintf("  Distinct items:    %d\n", report.ItemCount))
	b.WriteString(fmt.Sprintf("  Frequent itemsets: %d\n", len(report.Itemsets)))
	b.WriteString(fmt.Sprintf("  Rules:             %d\n", len(report.Rules)))

	if len(report.Rules) == 0 {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render("No rules met the thresholds; try lowering min_support or min_confidence."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-4s %-28s %-28s %-8s %-8s %-8s", "Rank", "Antecedent", "Consequent", "Supp", "Conf", "Lift")))
	b.WriteString("\n")

	for _, rule := range report.Rules {
		if rule.Rank > topRuleCount {
			break
		}
		b.WriteString(fmt.Sprintf("%-4d %-28s %-28s %-8.4f %-8.4f %-8.4f\n",
			rule.Rank,
			truncate(strings.Join(rule.Antecedent, ", "), 28),
			truncate(strings.Join(rule.Consequent, ", "), 28),
			rule.Support, rule.Confidence, rule.Lift))
	}

	if len(report.Rules) > topRuleCount {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("… and %d more; see the exported report", len(report.Rules)-topRuleCount)))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}
