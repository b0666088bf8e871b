// Package report builds member statement documents from fully
// computed ledger and portfolio rows. Rendering stays behind the
// Renderer interface so a richer document backend (PDF) can be
// swapped in without touching the aggregation core.
package report

import (
	"io"

	"chama/internal/core"
)

type (
	// Statement is one member's portfolio summary document.
	Statement struct {
		Member      core.Member
		Totals      core.Totals
		Ratio       float64
		GeneratedOn core.Date
	}

	// LedgerStatement is one member's full contribution ledger
	// document with running balances.
	LedgerStatement struct {
		Member      core.Member
		Rows        []core.LedgerRow
		Totals      core.Totals
		GeneratedOn core.Date
	}

	// Renderer turns statement documents into a presentation format.
	Renderer interface {
		RenderStatement(w io.Writer, s Statement) error
		RenderLedger(w io.Writer, s LedgerStatement) error
	}
)
