package domain

// Risk profiles, shared by users and portfolio options.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

const (
	AssetStock  = "stock"
	AssetCrypto = "crypto"
	AssetETF    = "etf"
)

// Investment funding sources.
const (
	SourceRoundups = "roundups"
	SourceWallet   = "wallet"
)

// Transfer / deposit statuses.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Deposit methods reported by the gateway.
const (
	MethodUPI        = "upi"
	MethodCard       = "card"
	MethodNetbanking = "netbanking"
	MethodWallet     = "wallet"
)

// Ledger entry kinds. Every balance mutation writes exactly one entry.
const (
	EntryRoundupCredit   = "roundup_credit"
	EntryRoundupReversal = "roundup_reversal"
	EntryInvestDebit     = "invest_debit"
	EntryExitCredit      = "exit_credit"
	EntryTransferDebit   = "transfer_debit"
	EntryDepositCredit   = "deposit_credit"
)

// Which balance a ledger entry applies to.
const (
	BalanceWallet = "wallet"
	BalancePool   = "pool"
)

// Rounding units accepted for round-up computation, in paise.
var RoundingUnitsPaise = []int64{100, 1000}

func ValidRoundingUnit(unitPaise int64) bool {
	for _, u := range RoundingUnitsPaise {
		if u == unitPaise {
			return true
		}
	}
	return false
}

func ValidRiskProfile(p string) bool {
	return p == RiskLow || p == RiskMedium || p == RiskHigh
}
