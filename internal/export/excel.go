// Package export flattens registrations into a spreadsheet for the
// organizing team.  Every registration appears regardless of verification
// state; the Verified column is there so the team can filter on it.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cache2k25/registration-backend/internal/model"
)

// SheetName is the single worksheet the export writes.
const SheetName = "Registrations"

type column struct {
	header string
	width  float64
}

var columns = []column{
	{"Registration ID", 20},
	{"Name", 20},
	{"Contact", 20},
	{"Email", 25},
	{"College", 25},
	{"Roll No", 15},
	{"Event", 20},
	{"Txn Date", 25},
	{"Amount", 15},
	{"UTR", 20},
	{"Payment Phone", 20},
	{"Game ID", 20},
	{"Team Members", 30},
	{"Verified", 10},
}

// Workbook builds the export spreadsheet.  An empty input yields a workbook
// with the header row only.  The caller is responsible for closing the file
// after writing it out.
func Workbook(regs []model.Registration) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	headers := make([]interface{}, len(columns))
	for i, col := range columns {
		headers[i] = col.header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, col.width); err != nil {
			return nil, err
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, err
	}

	for i, reg := range regs {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			reg.RegistrationID,
			reg.Name,
			reg.Contact,
			reg.Email,
			reg.College,
			reg.RollNumber,
			reg.EventName,
			reg.TransactionDate.Format("2006-01-02 15:04:05"),
			reg.TransactionAmount,
			reg.UTR,
			reg.PaymentPhone,
			orNA(reg.GameID),
			memberNames(reg.TeamMembers),
			yesNo(reg.Verified),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func memberNames(members []model.TeamMember) string {
	if len(members) == 0 {
		return "N/A"
	}
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return strings.Join(names, ", ")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
