package domain

import "strconv"

// VotingAuthority is the breakdown of voting power over a position.
// Absent counts are zero.
type VotingAuthority struct {
	Sole   int64 `json:"sole"`
	Shared int64 `json:"shared"`
	None   int64 `json:"none"`
}

// HoldingRecord is one reported security position.
type HoldingRecord struct {
	// IssuerName is required.
	IssuerName string `json:"issuer_name"`

	// ClassTitle is normalised by the title processor after assembly.
	ClassTitle string `json:"class_title"`

	// CUSIP is the security identifier code. Required.
	CUSIP string `json:"cusip"`

	// Value is the reported market value.
	Value int64 `json:"value"`

	// Amount is the share or principal amount.
	Amount int64 `json:"shares_or_principal"`

	// AmountType is SH (shares) or PRN (principal).
	AmountType string `json:"shares_type"`

	// PutCall is "Put", "Call" or empty.
	PutCall string `json:"put_call,omitempty"`

	// InvestmentDiscretion is SOLE, DFND or OTR.
	InvestmentDiscretion string `json:"discretion"`

	// OtherManager lists the other-manager sequence numbers.
	OtherManager string `json:"other_manager,omitempty"`

	// Voting holds the sole, shared and none counts.
	Voting VotingAuthority `json:"voting"`
}

// Holdings column names in output order.
const (
	HoldingColumnIssuerName   = "issuer_name"
	HoldingColumnClassTitle   = "class_title"
	HoldingColumnCUSIP        = "cusip"
	HoldingColumnValue        = "value"
	HoldingColumnAmount       = "shares_or_principal"
	HoldingColumnAmountType   = "shares_type"
	HoldingColumnPutCall      = "put_call"
	HoldingColumnDiscretion   = "discretion"
	HoldingColumnOtherManager = "other_manager"
	HoldingColumnVoteSole     = "vote_sole"
	HoldingColumnVoteShared   = "vote_shared"
	HoldingColumnVoteNone     = "vote_none"
)

// HoldingColumns returns the holdings columns in output order.
func HoldingColumns() []string {
	return []string{
		HoldingColumnIssuerName,
		HoldingColumnClassTitle,
		HoldingColumnCUSIP,
		HoldingColumnValue,
		HoldingColumnAmount,
		HoldingColumnAmountType,
		HoldingColumnPutCall,
		HoldingColumnDiscretion,
		HoldingColumnOtherManager,
		HoldingColumnVoteSole,
		HoldingColumnVoteShared,
		HoldingColumnVoteNone,
	}
}

// Row returns the record's values in HoldingColumns order.
func (h HoldingRecord) Row() []string {
	return []string{
		h.IssuerName,
		h.ClassTitle,
		h.CUSIP,
		strconv.FormatInt(h.Value, 10),
		strconv.FormatInt(h.Amount, 10),
		h.AmountType,
		h.PutCall,
		h.InvestmentDiscretion,
		h.OtherManager,
		strconv.FormatInt(h.Voting.Sole, 10),
		strconv.FormatInt(h.Voting.Shared, 10),
		strconv.FormatInt(h.Voting.None, 10),
	}
}
