package payroll

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const registerSheet = "Register"

var registerHeader = []any{
	"Payslip ID", "Employee ID", "Employee Name", "Month", "Generated",
	"Paid Days", "Total Days", "Attendance %",
	"Basic", "HRA", "DA", "Special Allowance", "Gross",
	"PF", "ESI", "PT", "Tax", "Total Deductions", "Net Salary",
}

// buildRegister writes one row per payslip into an XLSX workbook.
func buildRegister(rows []Payslip) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(registerSheet, "A1", &registerHeader); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(registerHeader))
	if err := f.SetCellStyle(registerSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}

	for i, p := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			p.ID, p.EmployeeID, p.EmployeeName, p.Month, p.GeneratedAt.Format("2006-01-02 15:04"),
			p.PaidDays, p.TotalDays, p.AttendancePercentage,
			p.Earnings.Basic, p.Earnings.HRA, p.Earnings.DA, p.Earnings.SpecialAllowance, p.Earnings.Gross,
			p.Deductions.PF, p.Deductions.ESI, p.Deductions.PT, p.Deductions.Tax, p.Deductions.TotalDeductions,
			p.NetSalary,
		}
		if err := f.SetSheetRow(registerSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(registerSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
