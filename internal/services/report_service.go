package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"barangay-backend/internal/models"
	"barangay-backend/internal/repositories"
	"barangay-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

var ErrNoResidents = errors.New("no residents to export")

// residentsCSVHeader is fixed; downstream spreadsheets key on it
var residentsCSVHeader = []string{
	"Resident ID", "Name", "Status", "Verification", "Last Modified", "For Review",
}

// statementWorkers bounds concurrent PDF rendering for bulk exports
const statementWorkers = 4

type ReportService struct {
	residents     *repositories.ResidentRepository
	households    *repositories.HouseholdRepository
	receipts      *repositories.ReceiptRepository
	disbursements *repositories.DisbursementRepository
}

func NewReportService(
	residents *repositories.ResidentRepository,
	households *repositories.HouseholdRepository,
	receipts *repositories.ReceiptRepository,
	disbursements *repositories.DisbursementRepository,
) *ReportService {
	return &ReportService{
		residents:     residents,
		households:    households,
		receipts:      receipts,
		disbursements: disbursements,
	}
}

// ResidentsCSVExport renders the current roster as CSV
func (s *ReportService) ResidentsCSVExport(ctx context.Context) ([]byte, error) {
	residents, err := s.residents.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildResidentsCSV(residents, timeutil.Now())
}

// BuildResidentsCSV renders residents into the export format. An empty
// roster is an error, not an empty file.
func BuildResidentsCSV(residents []*models.Resident, now time.Time) ([]byte, error) {
	if len(residents) == 0 {
		return nil, ErrNoResidents
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(residentsCSVHeader); err != nil {
		return nil, err
	}

	for _, res := range residents {
		lastModified := ""
		if !res.UpdatedAt.IsZero() {
			lastModified = timeutil.FormatPHT(res.UpdatedAt, timeutil.DateLayout)
		}
		forReview := "No"
		if res.ForReview {
			forReview = "Yes"
		}
		record := []string{
			strconv.Itoa(res.ID),
			res.FullName(),
			res.Status(now),
			res.UpdateStatus,
			lastModified,
			forReview,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FinancialCSVExport renders receipts and disbursements into one
// multi-section CSV: header block, per-type receipt sections with
// subtotals, disbursements and a grand total row
func (s *ReportService) FinancialCSVExport(ctx context.Context) ([]byte, error) {
	receipts, err := s.receipts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	disbursements, err := s.disbursements.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Barangay Financial Report"})
	w.Write([]string{"Generated", timeutil.FormatPHT(timeutil.Now(), timeutil.DateTimeLayout)})
	w.Write([]string{})

	sections := []struct {
		title       string
		receiptType string
	}{
		{"DOCUMENT REQUEST RECEIPTS", models.ReceiptTypeDocument},
		{"ASSET RENTAL RECEIPTS", models.ReceiptTypeAsset},
	}

	var incomeTotal float64
	for _, section := range sections {
		w.Write([]string{section.title})
		w.Write([]string{"Receipt Number", "Resident", "Amount", "Issued", "Description"})
		var subtotal float64
		for _, rec := range receipts {
			if rec.Type != section.receiptType {
				continue
			}
			subtotal += rec.Amount
			w.Write([]string{
				rec.ReceiptNumber,
				rec.ResidentName,
				fmt.Sprintf("%.2f", rec.Amount),
				timeutil.FormatPHT(rec.IssuedAt, timeutil.DateLayout),
				rec.Description,
			})
		}
		w.Write([]string{"", "Subtotal", fmt.Sprintf("%.2f", subtotal), "", ""})
		w.Write([]string{})
		incomeTotal += subtotal
	}

	w.Write([]string{"DISBURSEMENTS"})
	w.Write([]string{"Date", "Beneficiary", "Method", "Amount", "Remarks"})
	var disbursedTotal float64
	for _, d := range disbursements {
		disbursedTotal += d.Amount
		w.Write([]string{
			timeutil.FormatPHT(d.Date, timeutil.DateLayout),
			d.BeneficiaryName,
			d.PaymentMethod,
			fmt.Sprintf("%.2f", d.Amount),
			d.Remarks,
		})
	}
	w.Write([]string{"", "Subtotal", fmt.Sprintf("%.2f", disbursedTotal), "", ""})

	w.Write([]string{})
	w.Write([]string{"Total income", fmt.Sprintf("%.2f", incomeTotal)})
	w.Write([]string{"Total disbursed", fmt.Sprintf("%.2f", disbursedTotal)})
	w.Write([]string{"Net", fmt.Sprintf("%.2f", incomeTotal-disbursedTotal)})

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FinancialPDFExport renders the financial report as a PDF
func (s *ReportService) FinancialPDFExport(ctx context.Context) ([]byte, error) {
	receipts, err := s.receipts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	disbursements, err := s.disbursements.List(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	writePDFHeader(pdf, "Financial Report")

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "Income Receipts")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(35, 7, "Receipt No.", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Type", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Resident", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Issued", "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	var incomeTotal float64
	for _, rec := range receipts {
		incomeTotal += rec.Amount
		pdf.CellFormat(35, 6, rec.ReceiptNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, rec.Type, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, rec.ResidentName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", rec.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, timeutil.FormatPHT(rec.IssuedAt, timeutil.DateLayout), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "Disbursements")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(30, 7, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Beneficiary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Method", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	var disbursedTotal float64
	for _, d := range disbursements {
		disbursedTotal += d.Amount
		pdf.CellFormat(30, 6, timeutil.FormatPHT(d.Date, timeutil.DateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, d.BeneficiaryName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, d.PaymentMethod, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", d.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total income: %.2f", incomeTotal))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total disbursed: %.2f", disbursedTotal))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Net: %.2f", incomeTotal-disbursedTotal))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ProjectPDFExport renders a single project's full report: details,
// uploaded files and resident feedback
func (s *ReportService) ProjectPDFExport(ctx context.Context, p *models.Project, feedbacks []*models.Feedback) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	writePDFHeader(pdf, "Project Report: "+p.Name)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Owner: "+p.Owner)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Deadline: "+timeutil.FormatPHT(p.Deadline, timeutil.DateLayout))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Status: "+p.Status)
	pdf.Ln(6)
	if p.CompletedAt != nil {
		pdf.Cell(0, 6, "Completed: "+timeutil.FormatPHT(*p.CompletedAt, timeutil.DateLayout))
		pdf.Ln(6)
	}
	if p.Remarks != "" {
		pdf.MultiCell(0, 6, "Remarks: "+p.Remarks, "", "L", false)
	}
	pdf.Ln(4)

	if len(p.Files) > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 8, "Attached Files")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 9)
		for _, f := range p.Files {
			pdf.Cell(0, 5, fmt.Sprintf("%s (%d bytes)", f.FileName, f.Size))
			pdf.Ln(5)
		}
		pdf.Ln(4)
	}

	if len(feedbacks) > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 8, "Resident Feedback")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 9)
		for _, f := range feedbacks {
			pdf.MultiCell(0, 5, fmt.Sprintf("%s (%d/5): %s", f.ResidentName, f.Rating, f.Message), "", "L", false)
			pdf.Ln(2)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HouseholdStatementsZip renders one statement PDF per household and
// bundles them into a zip archive. Rendering runs on a small worker
// pool since large barangays have hundreds of households.
func (s *ReportService) HouseholdStatementsZip(ctx context.Context) ([]byte, error) {
	households, err := s.households.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(households) == 0 {
		return nil, errors.New("no households to export")
	}

	type statement struct {
		name string
		data []byte
	}

	jobs := make(chan *models.Household)
	results := make(chan statement, len(households))
	var wg sync.WaitGroup

	for i := 0; i < statementWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for h := range jobs {
				members, err := s.residents.ListByHouseholdCode(ctx, h.Code)
				if err != nil {
					log.Printf("[ReportService] Skipping %s: %v", h.Code, err)
					continue
				}
				data, err := buildHouseholdStatement(h, members)
				if err != nil {
					log.Printf("[ReportService] Skipping %s: %v", h.Code, err)
					continue
				}
				results <- statement{name: h.Code + ".pdf", data: data}
			}
		}()
	}

	for _, h := range households {
		jobs <- h
	}
	close(jobs)
	wg.Wait()
	close(results)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for st := range results {
		f, err := zw.Create(st.name)
		if err != nil {
			return nil, err
		}
		if _, err := f.Write(st.data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildHouseholdStatement(h *models.Household, members []*models.Resident) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	writePDFHeader(pdf, "Household Statement: "+h.Code)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Address: "+h.Address)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Members: %d", h.MembersCount))
	pdf.Ln(10)

	headID := 0
	if h.HeadResidentID != nil {
		headID = *h.HeadResidentID
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(90, 7, "Name", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Age", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Role", "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, m := range OrderMembers(members, headID) {
		role := "Member"
		if m.ID == headID {
			role = "Head"
		}
		pdf.CellFormat(90, 6, m.FullName(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, strconv.Itoa(m.Age), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, role, "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePDFHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, "Generated "+timeutil.FormatPHT(timeutil.Now(), timeutil.DisplayLayout))
	pdf.Ln(10)
}
