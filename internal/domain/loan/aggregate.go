package loan

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Bucket is one status row of a dashboard breakdown.
type Bucket struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type Aggregates struct {
	TotalLoans     int               `json:"total_loans"`
	TotalAmount    float64           `json:"total_amount"`
	TotalDisbursed float64           `json:"total_disbursed"`
	TotalRepaid    float64           `json:"total_repaid"`
	ByStatus       map[Status]Bucket `json:"by_status"`
}

// Percent returns part/total*100 rounded half away from zero to one decimal,
// or 0 when total is 0.
func Percent(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(hundred).Round(1).InexactFloat64()
}

// CountPercent is Percent for whole counts.
func CountPercent(count, total int) float64 {
	return Percent(decimal.NewFromInt(int64(count)), decimal.NewFromInt(int64(total)))
}

// PercentPaid is the share of the total payable already repaid.
func PercentPaid(l Loan) float64 {
	return Percent(decimal.NewFromFloat(l.AmountPaid), decimal.NewFromFloat(l.TotalAmountPayable))
}

// ComputeAggregates summarises loans for dashboards. Every known status gets a
// bucket; a loan carrying an unrecognised status gets a bucket of its own so
// bucket counts always add up to TotalLoans.
func ComputeAggregates(loans []Loan) Aggregates {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}

	amount, disbursed, repaid := decimal.Zero, decimal.Zero, decimal.Zero
	for _, l := range loans {
		counts[l.Status]++
		a := decimal.NewFromFloat(l.Amount)
		amount = amount.Add(a)
		if l.Status.HasDisbursed() {
			disbursed = disbursed.Add(a)
		}
		repaid = repaid.Add(decimal.NewFromFloat(l.AmountPaid))
	}

	out := Aggregates{
		TotalLoans:     len(loans),
		TotalAmount:    amount.InexactFloat64(),
		TotalDisbursed: disbursed.InexactFloat64(),
		TotalRepaid:    repaid.InexactFloat64(),
		ByStatus:       make(map[Status]Bucket, len(counts)),
	}
	for s, n := range counts {
		out.ByStatus[s] = Bucket{Count: n, Percent: CountPercent(n, len(loans))}
	}
	return out
}

// ApplyRepayment returns a copy of l with amount added to AmountPaid.
func ApplyRepayment(l Loan, amount float64) (Loan, error) {
	if amount <= 0 {
		return l, ErrInvalidInput
	}
	if l.Status != StatusDisbursed && l.Status != StatusRepaying {
		return l, ErrRepaymentNotAllowed
	}
	paid := decimal.NewFromFloat(l.AmountPaid).Add(decimal.NewFromFloat(amount))
	if paid.GreaterThan(decimal.NewFromFloat(l.TotalAmountPayable)) {
		return l, ErrOverpayment
	}
	out := l
	out.AmountPaid = paid.InexactFloat64()
	return out, nil
}
