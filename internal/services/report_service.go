package services

import (
	"strconv"

	"gorm.io/gorm"

	"financas/internal/calendar"
	apperrors "financas/internal/errors"
	"financas/internal/models"
	"financas/internal/reports"
)

// TransactionReportHeaders are the columns of the transactions export.
var TransactionReportHeaders = []string{"Data", "Tipo", "Categoria", "Conta", "Descrição", "Valor"}

// reportService builds downloadable reports.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// BuildTransactionReport lays out transactions as a report table. Month and
// category describe the filters for the metadata lines.
func BuildTransactionReport(month *calendar.Month, categoryID *string, transactions []models.Transaction) reports.Report {
	monthLabel := "Todos"
	if month != nil {
		monthLabel = month.String()
	}
	categoryLabel := "Todas"
	if categoryID != nil {
		categoryLabel = *categoryID
	}

	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, []string{
			t.Date.Format("2006-01-02"),
			string(t.Type),
			t.Category.Name,
			t.Account.Name,
			t.Description,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
		})
	}

	return reports.Report{
		Title: "Relatório Financeiro",
		Meta: []reports.MetaLine{
			{Key: "Mês", Value: monthLabel},
			{Key: "Categoria", Value: categoryLabel},
		},
		Headers: TransactionReportHeaders,
		Rows:    rows,
	}
}

// ExportTransactionsCSV renders the filtered transactions, oldest first.
func (s *reportService) ExportTransactionsCSV(month *calendar.Month, categoryID *string) (*ExportedFile, error) {
	q := s.db.Preload("Category").Preload("Account")
	if month != nil {
		q = q.Where("date >= ? AND date < ?", month.FirstDay(), month.NextFirstDay())
	}
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	var transactions []models.Transaction
	if err := q.Order("date ASC").Order("created_at ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	data, err := reports.RenderCSV(BuildTransactionReport(month, categoryID, transactions))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	suffix := "todos"
	if month != nil {
		suffix = month.String()
	}
	return &ExportedFile{
		Filename:    reports.SanitizeFilename("relatorio_"+suffix) + ".csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        data,
	}, nil
}
