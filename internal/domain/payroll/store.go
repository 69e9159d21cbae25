package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Numeric and date columns come back as text so decimal parsing stays exact.
const payslipColumns = `
    id, employee_id,
    pay_period_start::text, pay_period_end::text, issue_date::text,
    basic_salary::text, overtime::text, bonus::text,
    tax::text, health_insurance::text, retirement::text,
    gross_pay::text, total_deductions::text, net_pay::text,
    created_at`

func scanPayslip(row pgx.Row) (Payslip, error) {
	var p Payslip
	var basic, overtime, bonus, tax, health, retirement, gross, deductions, net string
	err := row.Scan(
		&p.ID, &p.EmployeeID,
		&p.PayPeriodStart, &p.PayPeriodEnd, &p.IssueDate,
		&basic, &overtime, &bonus, &tax, &health, &retirement,
		&gross, &deductions, &net,
		&p.CreatedAt,
	)
	if err != nil {
		return Payslip{}, err
	}

	fields := []struct {
		raw string
		dst *Money
	}{
		{basic, &p.BasicSalary},
		{overtime, &p.Overtime},
		{bonus, &p.Bonus},
		{tax, &p.Tax},
		{health, &p.HealthInsurance},
		{retirement, &p.Retirement},
		{gross, &p.GrossPay},
		{deductions, &p.TotalDeductions},
		{net, &p.NetPay},
	}
	for _, field := range fields {
		value, err := decimal.NewFromString(field.raw)
		if err != nil {
			return Payslip{}, err
		}
		*field.dst = MoneyFrom(value)
	}
	return p, nil
}

func (s *Store) List(ctx context.Context) ([]Payslip, error) {
	return s.queryPayslips(ctx, `
    SELECT`+payslipColumns+`
    FROM payslips
    ORDER BY id
  `)
}

// Recent returns the newest payslips by issue date, capped at limit.
func (s *Store) Recent(ctx context.Context, limit int) ([]Payslip, error) {
	return s.queryPayslips(ctx, `
    SELECT`+payslipColumns+`
    FROM payslips
    ORDER BY issue_date DESC, id DESC
    LIMIT $1
  `, limit)
}

func (s *Store) queryPayslips(ctx context.Context, sql string, args ...any) ([]Payslip, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Payslip{}
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (Payslip, error) {
	p, err := scanPayslip(s.DB.QueryRow(ctx, `
    SELECT`+payslipColumns+`
    FROM payslips
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Payslip{}, ErrPayslipNotFound
	}
	return p, err
}

func (s *Store) Create(ctx context.Context, p Payslip) (Payslip, error) {
	created, err := scanPayslip(s.DB.QueryRow(ctx, `
    INSERT INTO payslips (employee_id, pay_period_start, pay_period_end, issue_date,
      basic_salary, overtime, bonus, tax, health_insurance, retirement,
      gross_pay, total_deductions, net_pay)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    RETURNING`+payslipColumns+`
  `,
		p.EmployeeID, p.PayPeriodStart, p.PayPeriodEnd, p.IssueDate,
		p.BasicSalary.StringFixed(2), p.Overtime.StringFixed(2), p.Bonus.StringFixed(2),
		p.Tax.StringFixed(2), p.HealthInsurance.StringFixed(2), p.Retirement.StringFixed(2),
		p.GrossPay.StringFixed(2), p.TotalDeductions.StringFixed(2), p.NetPay.StringFixed(2),
	))
	if err != nil {
		return Payslip{}, err
	}
	return created, nil
}

// StatsByMonth looks up one aggregate row. An empty month selects the most
// recently added one.
func (s *Store) StatsByMonth(ctx context.Context, month string) (Stats, error) {
	var row pgx.Row
	if month == "" {
		row = s.DB.QueryRow(ctx, `
      SELECT id, month, total_salary::text, overtime::text, bonuses::text,
             tax_deductions::text, insurance_benefits::text, net_payroll::text
      FROM payroll_stats
      ORDER BY created_at DESC, id DESC
      LIMIT 1
    `)
	} else {
		row = s.DB.QueryRow(ctx, `
      SELECT id, month, total_salary::text, overtime::text, bonuses::text,
             tax_deductions::text, insurance_benefits::text, net_payroll::text
      FROM payroll_stats
      WHERE month = $1
    `, month)
	}

	var stats Stats
	var salary, overtime, bonuses, taxes, insurance, net string
	err := row.Scan(&stats.ID, &stats.Month, &salary, &overtime, &bonuses, &taxes, &insurance, &net)
	if errors.Is(err, pgx.ErrNoRows) {
		return Stats{}, ErrStatsNotFound
	}
	if err != nil {
		return Stats{}, err
	}

	fields := []struct {
		raw string
		dst *Money
	}{
		{salary, &stats.TotalSalary},
		{overtime, &stats.Overtime},
		{bonuses, &stats.Bonuses},
		{taxes, &stats.TaxDeductions},
		{insurance, &stats.InsuranceBenefits},
		{net, &stats.NetPayroll},
	}
	for _, field := range fields {
		value, err := decimal.NewFromString(field.raw)
		if err != nil {
			return Stats{}, err
		}
		*field.dst = MoneyFrom(value)
	}
	return stats, nil
}
