package payroll

import "github.com/shopspring/decimal"

type Inputs struct {
	BasicSalary     decimal.Decimal
	Overtime        decimal.Decimal
	Bonus           decimal.Decimal
	Tax             decimal.Decimal
	HealthInsurance decimal.Decimal
	Retirement      decimal.Decimal
}

type Totals struct {
	GrossPay        decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
}

// ComputeTotals derives gross, deductions and net from the six inputs.
// gross = basic + overtime + bonus; deductions = tax + health + retirement;
// net = gross - deductions.
func ComputeTotals(in Inputs) Totals {
	gross := in.BasicSalary.Add(in.Overtime).Add(in.Bonus)
	deductions := in.Tax.Add(in.HealthInsurance).Add(in.Retirement)
	return Totals{
		GrossPay:        gross,
		TotalDeductions: deductions,
		NetPay:          gross.Sub(deductions),
	}
}
