// Package service provides business logic for salary payments.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"zumarlaw_backend/internal/payroll/repository"
	"zumarlaw_backend/internal/payroll/transport"
	"zumarlaw_backend/platform/apperr"
	"zumarlaw_backend/platform/logger"
)

// Service provides business logic for payroll.
type Service struct {
	repo *repository.Repo
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new payroll service.
func New(repo *repository.Repo, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Create records a salary payment.
func (s *Service) Create(ctx context.Context, req transport.CreatePayrollRequest) (transport.PayrollResponse, error) {
	name := strings.TrimSpace(req.EmployeeName)
	if name == "" {
		return transport.PayrollResponse{}, apperr.Validation("employeeName is required")
	}

	payroll, err := s.repo.Create(ctx, name, req.Salary)
	if err != nil {
		return transport.PayrollResponse{}, err
	}

	s.log.Info("payroll recorded", "id", payroll.ID, "employee", payroll.EmployeeName, "salary", payroll.Salary)
	return toResponse(payroll), nil
}

// List returns salary payments, optionally restricted to one calendar month.
// Month without year uses the current year; year without month covers the
// whole year.
func (s *Service) List(ctx context.Context, req transport.ListPayrollsRequest) (transport.PayrollListResponse, error) {
	payrolls, err := s.repo.List(ctx, listWindow(req.Month, req.Year, s.now()))
	if err != nil {
		return transport.PayrollListResponse{}, err
	}

	items := make([]transport.PayrollResponse, 0, len(payrolls))
	var total int64
	for _, payroll := range payrolls {
		items = append(items, toResponse(payroll))
		total += payroll.Salary
	}

	return transport.PayrollListResponse{Items: items, TotalSalary: total}, nil
}

// Delete removes one salary payment.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// listWindow maps an optional month/year pair onto a created_at range. Month
// without year uses the reference year; year without month covers the whole
// year; neither leaves the listing unbounded.
func listWindow(month, year int, ref time.Time) repository.ListParams {
	if month == 0 && year == 0 {
		return repository.ListParams{}
	}

	if year == 0 {
		year = ref.Year()
	}

	var params repository.ListParams
	if month != 0 {
		params.From = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		params.To = params.From.AddDate(0, 1, 0).Add(-time.Nanosecond)
	} else {
		params.From = time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		params.To = params.From.AddDate(1, 0, 0).Add(-time.Nanosecond)
	}
	return params
}

func toResponse(payroll repository.Payroll) transport.PayrollResponse {
	return transport.PayrollResponse{
		ID:           payroll.ID.String(),
		EmployeeName: payroll.EmployeeName,
		Salary:       payroll.Salary,
		CreatedAt:    payroll.CreatedAt.Format(time.RFC3339),
	}
}
