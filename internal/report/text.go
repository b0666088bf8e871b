package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"chama/internal/export"
)

const signatureLine = "Signature: ____________________________"

// TextRenderer renders statements as plain text documents.
type TextRenderer struct{}

var _ Renderer = TextRenderer{}

func (TextRenderer) RenderStatement(w io.Writer, s Statement) error {
	_, err := fmt.Fprintf(w, `Member Statement - %s
Member ID: %s
Generated: %s

Total Principal:    %s
Total Interest:     %s
Portfolio Value:    %s
Contribution Ratio: %.4f

%s
`,
		s.Member.Name,
		s.Member.ID,
		s.GeneratedOn.ISO(),
		export.FormatAmount(s.Totals.Principal),
		export.FormatAmount(s.Totals.Interest),
		export.FormatAmount(s.Totals.Total),
		s.Ratio,
		signatureLine,
	)
	return err
}

func (TextRenderer) RenderLedger(w io.Writer, s LedgerStatement) error {
	if _, err := fmt.Fprintf(w, "Member Ledger - %s\nMember ID: %s\nGenerated: %s\n\n",
		s.Member.Name, s.Member.ID, s.GeneratedOn.ISO()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tPRINCIPAL\tINTEREST\tTOTAL\tBALANCE")
	for _, r := range s.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Contribution.Date.ISO(),
			export.FormatAmount(r.Contribution.Amount),
			export.FormatAmount(r.Interest),
			export.FormatAmount(r.Total),
			export.FormatAmount(r.Balance),
		)
	}
	fmt.Fprintf(tw, "TOTAL\t%s\t%s\t%s\t\n",
		export.FormatAmount(s.Totals.Principal),
		export.FormatAmount(s.Totals.Interest),
		export.FormatAmount(s.Totals.Total),
	)
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n", signatureLine)
	return err
}
