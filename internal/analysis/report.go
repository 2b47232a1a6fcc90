package analysis

import (
	"fmt"
	"strings"
)

// reportTimeLayout is the human-readable stamp in the report header.
const reportTimeLayout = "2006-01-02 15:04:05"

const noDataLine = "   - no data\n"

// FormatReport renders pipeline results as the canonical text report.
//
// The layout is a contract, not cosmetics: the CSV export is derived from
// these exact lines (split on the first colon), so changing wording here
// changes the export schema. Sections appear in pipeline order; currency is
// $X.XX; ratios carry two decimals.
func FormatReport(res *Results) string {
	var b strings.Builder

	b.WriteString("=== SUPERMARKET FULL ANALYSIS ===\n\n")
	fmt.Fprintf(&b, "Report generated: %s\n", res.GeneratedAt.Format(reportTimeLayout))
	fmt.Fprintf(&b, "Total records: %d\n\n", res.RecordCount)

	// Date range is omitted entirely when no document has a timestamp,
	// mirroring a dataframe without the column.
	if res.DateRange.Available {
		b.WriteString("Date range in the data:\n")
		fmt.Fprintf(&b, "   - From: %s\n", res.DateRange.Value.From)
		fmt.Fprintf(&b, "   - To: %s\n\n", res.DateRange.Value.To)
	}

	b.WriteString("1. BEST SALES DAY (BY REVENUE):\n")
	if res.BestDay.Available {
		day := res.BestDay.Value
		fmt.Fprintf(&b, "   - Date: %s\n", day.Date)
		fmt.Fprintf(&b, "   - Total sold: $%s\n", day.Revenue.StringFixed(2))
		fmt.Fprintf(&b, "   - Sales completed: %d\n", day.Transactions)
	} else {
		b.WriteString(noDataLine)
	}
	b.WriteString("\n")

	b.WriteString("2. AVERAGE TRANSACTIONS PER DAY:\n")
	if res.AvgPerDay.Available {
		fmt.Fprintf(&b, "   - %s transactions/day\n", res.AvgPerDay.Value.StringFixed(2))
	} else {
		b.WriteString(noDataLine)
	}
	b.WriteString("\n")

	b.WriteString("3. AVERAGE SALE VALUE:\n")
	if res.AvgSale.Available {
		fmt.Fprintf(&b, "   - $%s per transaction\n", res.AvgSale.Value.StringFixed(2))
	} else {
		b.WriteString(noDataLine)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "4. BEST-SELLING PRODUCTS (BY QUANTITY - TOP %d):\n", res.TopN)
	if res.TopProducts.Available {
		for i, p := range res.TopProducts.Value {
			fmt.Fprintf(&b, "   %d. %s: %s units ($%s)\n",
				i+1, p.Name, p.Quantity.StringFixed(0), p.Revenue.StringFixed(2))
		}
	} else {
		b.WriteString(noDataLine)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "5. TOP CUSTOMERS (BY TOTAL SPEND - TOP %d):\n", res.TopN)
	if res.TopCustomers.Available {
		for i, c := range res.TopCustomers.Value {
			fmt.Fprintf(&b, "   %d. %s: $%s (%d purchases)\n",
				i+1, c.Name, c.Spend.StringFixed(2), c.Purchases)
		}
	} else {
		b.WriteString(noDataLine)
	}
	b.WriteString("\n")

	// Summary statistics are omitted, not zeroed, for an empty snapshot.
	if res.Stats.Available {
		s := res.Stats.Value
		b.WriteString("6. SUMMARY STATISTICS:\n")
		fmt.Fprintf(&b, "   - Total sales: %d\n", s.Count)
		fmt.Fprintf(&b, "   - Total revenue: $%s\n", s.Sum.StringFixed(2))
		fmt.Fprintf(&b, "   - Average ticket: $%s\n", s.Mean.StringFixed(2))
		fmt.Fprintf(&b, "   - Largest sale: $%s\n", s.Max.StringFixed(2))
		fmt.Fprintf(&b, "   - Smallest sale: $%s\n", s.Min.StringFixed(2))
		if s.HasStdDev {
			fmt.Fprintf(&b, "   - Standard deviation: %s\n", s.StdDev.StringFixed(2))
		}
	}

	return b.String()
}
