package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", value, err)
	}
	return d
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(Inputs{
		BasicSalary:     dec(t, "4500"),
		Overtime:        dec(t, "150"),
		Bonus:           dec(t, "200"),
		Tax:             dec(t, "750"),
		HealthInsurance: dec(t, "150"),
		Retirement:      dec(t, "250"),
	})

	if !totals.GrossPay.Equal(dec(t, "4850")) {
		t.Fatalf("expected gross 4850, got %s", totals.GrossPay)
	}
	if !totals.TotalDeductions.Equal(dec(t, "1150")) {
		t.Fatalf("expected deductions 1150, got %s", totals.TotalDeductions)
	}
	if !totals.NetPay.Equal(dec(t, "3700")) {
		t.Fatalf("expected net 3700, got %s", totals.NetPay)
	}
}

func TestComputeTotalsZeroInputs(t *testing.T) {
	totals := ComputeTotals(Inputs{})
	if !totals.GrossPay.IsZero() || !totals.TotalDeductions.IsZero() || !totals.NetPay.IsZero() {
		t.Fatalf("expected all-zero totals, got %s / %s / %s", totals.GrossPay, totals.TotalDeductions, totals.NetPay)
	}
}

func TestComputeTotalsKeepsCentsExact(t *testing.T) {
	totals := ComputeTotals(Inputs{
		BasicSalary: dec(t, "0.10"),
		Overtime:    dec(t, "0.20"),
		Tax:         dec(t, "0.15"),
	})
	if !totals.GrossPay.Equal(dec(t, "0.30")) {
		t.Fatalf("expected gross 0.30, got %s", totals.GrossPay)
	}
	if !totals.NetPay.Equal(dec(t, "0.15")) {
		t.Fatalf("expected net 0.15, got %s", totals.NetPay)
	}
}

func TestComputeTotalsInvariant(t *testing.T) {
	cases := []Inputs{
		{BasicSalary: dec(t, "3800"), Bonus: dec(t, "150"), Tax: dec(t, "650"), HealthInsurance: dec(t, "120"), Retirement: dec(t, "200")},
		{BasicSalary: dec(t, "4800"), Overtime: dec(t, "250"), Bonus: dec(t, "200"), Tax: dec(t, "800"), HealthInsurance: dec(t, "160"), Retirement: dec(t, "300")},
		{BasicSalary: dec(t, "4000"), Bonus: dec(t, "150"), Tax: dec(t, "700"), HealthInsurance: dec(t, "130"), Retirement: dec(t, "220")},
	}

	for i, in := range cases {
		totals := ComputeTotals(in)
		wantGross := in.BasicSalary.Add(in.Overtime).Add(in.Bonus)
		wantDeductions := in.Tax.Add(in.HealthInsurance).Add(in.Retirement)
		if !totals.GrossPay.Equal(wantGross) {
			t.Fatalf("case %d: gross %s != %s", i, totals.GrossPay, wantGross)
		}
		if !totals.TotalDeductions.Equal(wantDeductions) {
			t.Fatalf("case %d: deductions %s != %s", i, totals.TotalDeductions, wantDeductions)
		}
		if !totals.NetPay.Equal(wantGross.Sub(wantDeductions)) {
			t.Fatalf("case %d: net %s != gross-deductions", i, totals.NetPay)
		}
	}
}
