package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"paymeet/internal/domain/employee"
)

// RenderPayslipPDF produces the payslip document for one employee and pay
// period. The layout is deterministic for a given payslip.
func RenderPayslipPDF(p Payslip, emp employee.Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s (%s)", emp.FirstName, emp.LastName, emp.EmployeeNumber))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s / %s", emp.Department, emp.Position))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", p.PayPeriodStart, p.PayPeriodEnd))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Issue date: %s", p.IssueDate))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Basic salary: Rs. %s", p.BasicSalary.StringFixed(2)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Overtime: Rs. %s", p.Overtime.StringFixed(2)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Bonus: Rs. %s", p.Bonus.StringFixed(2)))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Tax: Rs. %s", p.Tax.StringFixed(2)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Health insurance: Rs. %s", p.HealthInsurance.StringFixed(2)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Retirement: Rs. %s", p.Retirement.StringFixed(2)))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross pay: Rs. %s", p.GrossPay.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total deductions: Rs. %s", p.TotalDeductions.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: Rs. %s", p.NetPay.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
