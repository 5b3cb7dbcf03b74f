package report

import "context"

type ReportService interface {
	Generate(ctx context.Context, reportType Type) (*Report, error)
}
