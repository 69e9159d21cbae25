package payroll

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrPayslipNotFound = errors.New("payslip not found")
	ErrStatsNotFound   = errors.New("payroll stats not found")
)

// Money is a decimal that always serializes with two fractional digits, so
// 4850 goes out as "4850.00".
type Money struct {
	decimal.Decimal
}

func MoneyFrom(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// Payslip is immutable once created. The three derived fields are always
// computed server-side from the six inputs; see ComputeTotals.
type Payslip struct {
	ID              int64     `json:"id"`
	EmployeeID      int64     `json:"employeeId"`
	PayPeriodStart  string    `json:"payPeriodStart"`
	PayPeriodEnd    string    `json:"payPeriodEnd"`
	IssueDate       string    `json:"issueDate"`
	BasicSalary     Money     `json:"basicSalary"`
	Overtime        Money     `json:"overtime"`
	Bonus           Money     `json:"bonus"`
	Tax             Money     `json:"tax"`
	HealthInsurance Money     `json:"healthInsurance"`
	Retirement      Money     `json:"retirement"`
	GrossPay        Money     `json:"grossPay"`
	TotalDeductions Money     `json:"totalDeductions"`
	NetPay          Money     `json:"netPay"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Stats is a precomputed monthly aggregate, read-only from the API.
type Stats struct {
	ID                int64  `json:"id"`
	Month             string `json:"month"`
	TotalSalary       Money  `json:"totalSalary"`
	Overtime          Money  `json:"overtime"`
	Bonuses           Money  `json:"bonuses"`
	TaxDeductions     Money  `json:"taxDeductions"`
	InsuranceBenefits Money  `json:"insuranceBenefits"`
	NetPayroll        Money  `json:"netPayroll"`
}
