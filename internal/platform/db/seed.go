package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"paymeet/internal/domain/auth"
	"paymeet/internal/domain/payroll"
	"paymeet/internal/platform/config"
)

// Seed loads the demo dataset. Every step checks for existing rows first so
// repeated startups are no-ops.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := seedEmployees(ctx, pool); err != nil {
		return err
	}
	if err := seedPayslips(ctx, pool); err != nil {
		return err
	}
	if err := seedMeetings(ctx, pool); err != nil {
		return err
	}
	if err := seedProfile(ctx, pool); err != nil {
		return err
	}
	if err := seedPayrollStats(ctx, pool); err != nil {
		return err
	}
	return seedAdminUser(ctx, pool, cfg)
}

type seedEmployee struct {
	firstName, lastName, email, phone, department, position, number, status string
}

var demoEmployees = []seedEmployee{
	{"John", "Doe", "john.doe@example.com", "555-123-4567", "Development", "Senior Developer", "EMP001", "active"},
	{"Jane", "Smith", "jane.smith@example.com", "555-987-6543", "Marketing", "Marketing Manager", "EMP002", "active"},
	{"Mike", "Johnson", "mike.johnson@example.com", "555-456-7890", "Finance", "Financial Analyst", "EMP003", "active"},
	{"Sarah", "Adams", "sarah.adams@example.com", "555-234-5678", "Human Resources", "HR Manager", "EMP004", "active"},
	{"Robert", "Johnson", "robert.johnson@example.com", "555-345-6789", "Development", "Frontend Developer", "EMP005", "on-leave"},
	{"Emily", "Williams", "emily.williams@example.com", "555-456-7890", "Marketing", "Content Writer", "EMP006", "active"},
	{"David", "Brown", "david.brown@example.com", "555-567-8901", "Finance", "Accountant", "EMP007", "inactive"},
}

func seedEmployees(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, emp := range demoEmployees {
		_, err := pool.Exec(ctx, `
      INSERT INTO employees (first_name, last_name, email, phone, department, position, employee_number, status)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, emp.firstName, emp.lastName, emp.email, emp.phone, emp.department, emp.position, emp.number, emp.status)
		if err != nil {
			return err
		}
	}
	return nil
}

type seedPayslip struct {
	employeeNumber                                  string
	basic, overtime, bonus, tax, health, retirement string
}

var demoPayslips = []seedPayslip{
	{"EMP001", "4500.00", "150.00", "200.00", "750.00", "150.00", "250.00"},
	{"EMP002", "3800.00", "0.00", "150.00", "650.00", "120.00", "200.00"},
	{"EMP003", "4800.00", "250.00", "200.00", "800.00", "160.00", "300.00"},
	{"EMP004", "4000.00", "0.00", "150.00", "700.00", "130.00", "220.00"},
}

func seedPayslips(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM payslips").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, slip := range demoPayslips {
		var employeeID int64
		if err := pool.QueryRow(ctx, "SELECT id FROM employees WHERE employee_number = $1", slip.employeeNumber).Scan(&employeeID); err != nil {
			return err
		}

		inputs := payroll.Inputs{
			BasicSalary:     decimal.RequireFromString(slip.basic),
			Overtime:        decimal.RequireFromString(slip.overtime),
			Bonus:           decimal.RequireFromString(slip.bonus),
			Tax:             decimal.RequireFromString(slip.tax),
			HealthInsurance: decimal.RequireFromString(slip.health),
			Retirement:      decimal.RequireFromString(slip.retirement),
		}
		totals := payroll.ComputeTotals(inputs)

		_, err := pool.Exec(ctx, `
      INSERT INTO payslips (employee_id, pay_period_start, pay_period_end, issue_date,
        basic_salary, overtime, bonus, tax, health_insurance, retirement,
        gross_pay, total_deductions, net_pay)
      VALUES ($1, '2023-04-01', '2023-04-30', '2023-05-05', $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `,
			employeeID,
			inputs.BasicSalary.StringFixed(2), inputs.Overtime.StringFixed(2), inputs.Bonus.StringFixed(2),
			inputs.Tax.StringFixed(2), inputs.HealthInsurance.StringFixed(2), inputs.Retirement.StringFixed(2),
			totals.GrossPay.StringFixed(2), totals.TotalDeductions.StringFixed(2), totals.NetPay.StringFixed(2),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

type seedMeeting struct {
	title, description, date, timeRange, location string
	participantNumbers                            []string
}

var demoMeetings = []seedMeeting{
	{
		"Quarterly Review", "Quarterly performance review meeting", "2023-05-15", "10:30 - 11:30", "Conference Room A",
		[]string{"EMP001", "EMP002", "EMP003", "EMP004", "EMP005"},
	},
	{
		"Weekly Standup", "Weekly team status update", "2023-05-16", "09:00 - 09:30", "Zoom Meeting",
		[]string{"EMP001", "EMP002", "EMP003", "EMP004", "EMP005", "EMP006", "EMP007"},
	},
	{
		"HR Policy Update", "HR policy updates and changes", "2023-05-18", "14:00 - 15:00", "Conference Room B",
		[]string{"EMP001", "EMP002", "EMP004"},
	},
}

func seedMeetings(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM meetings").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, m := range demoMeetings {
		var meetingID int64
		err := pool.QueryRow(ctx, `
      INSERT INTO meetings (title, description, meeting_date, time_range, location)
      VALUES ($1, $2, $3, $4, $5)
      RETURNING id
    `, m.title, m.description, m.date, m.timeRange, m.location).Scan(&meetingID)
		if err != nil {
			return err
		}

		for _, number := range m.participantNumbers {
			_, err := pool.Exec(ctx, `
        INSERT INTO meeting_participants (meeting_id, employee_id)
        SELECT $1, id FROM employees WHERE employee_number = $2
        ON CONFLICT DO NOTHING
      `, meetingID, number)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func seedProfile(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM profile").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := pool.Exec(ctx, `
    INSERT INTO profile (first_name, last_name, email, phone, department, position, address, city, state, zip_code, country)
    VALUES ('Admin', 'User', 'admin@paymeet.com', '555-123-4567', 'Administration', 'System Administrator',
            '123 Main St', 'New York', 'NY', '10001', 'USA')
  `)
	return err
}

func seedPayrollStats(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM payroll_stats").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := pool.Exec(ctx, `
    INSERT INTO payroll_stats (month, total_salary, overtime, bonuses, tax_deductions, insurance_benefits, net_payroll)
    VALUES ('April 2023', 128450.00, 8245.00, 6150.00, 32112.50, 12845.00, 97887.50)
  `)
	return err
}

func seedAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminUsername == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE username = $1", cfg.SeedAdminUsername).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, "INSERT INTO users (username, password) VALUES ($1, $2)", cfg.SeedAdminUsername, hash)
	return err
}
