package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go-payroll/internal/archive"
	"go-payroll/internal/attendance"
	"go-payroll/internal/delivery"
	deliveryerrors "go-payroll/internal/delivery/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/render"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	DefaultRenderTimeout = 20 * time.Second
	DefaultSendTimeout   = 30 * time.Second

	generateAllConcurrency = 4
	archiveURLTTL          = 15 * time.Minute
	contentTypePDF         = "application/pdf"
	contentTypeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type EmployeeReader interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
	FindAll(ctx context.Context) ([]employee.Employee, error)
}

type AttendanceReader interface {
	FindForPayroll(ctx context.Context, employeeID, month string) ([]attendance.Attendance, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, employeeID, month string) (PayslipResponse, error)
	GenerateAll(ctx context.Context, month string) (GenerateAllResponse, error)
	View(ctx context.Context, actor domain.Actor, id string) (PayslipView, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]PayslipResponse, error)
	ListLatest(ctx context.Context) ([]PayslipResponse, error)
	RenderPDF(ctx context.Context, id string) (Document, error)
	RenderHTML(ctx context.Context, actor domain.Actor, id string) ([]byte, error)
	Email(ctx context.Context, id string, req EmailPayslipRequest) (EmailPayslipResponse, error)
	SendToEmployee(ctx context.Context, id string) error
	ExportRegister(ctx context.Context, month string) (Document, error)
}

// Deps wires the payroll service. Outbox, Archive and Sender are optional.
type Deps struct {
	DB            *sql.DB
	Repo          Repository
	Employees     EmployeeReader
	Attendance    AttendanceReader
	Outbox        kafka.OutboxRepository
	IDs           *snowflake.Node
	Renderer      render.Renderer
	Sender        delivery.Sender
	Archive       archive.Store
	RenderTimeout time.Duration
	SendTimeout   time.Duration
	Now           func() time.Time
}

type service struct {
	Deps
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if deps.RenderTimeout <= 0 {
		deps.RenderTimeout = DefaultRenderTimeout
	}
	if deps.SendTimeout <= 0 {
		deps.SendTimeout = DefaultSendTimeout
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Archive == nil {
		deps.Archive = archive.NewNopStore()
	}
	return &service{Deps: deps, sf: &singleflight.Group{}, logger: l}
}

// Generate computes and stores a new payslip. The month defaults to the
// current one. Nothing is written when the month is invalid or the
// employee does not exist.
func (s *service) Generate(ctx context.Context, employeeID, month string) (PayslipResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	month = strings.TrimSpace(month)
	if month == "" {
		month = s.Now().Format("2006-01")
	}
	if _, _, err := ParseMonth(month); err != nil {
		return PayslipResponse{}, err
	}

	emp, err := s.Employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		return PayslipResponse{}, err
	}

	records, err := s.Attendance.FindForPayroll(ctx, emp.ID, month)
	if err != nil {
		return PayslipResponse{}, err
	}

	now := s.Now()
	slip, err := Compute(Input{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Salary:       emp.SalaryStructure(),
		Month:        month,
		Attendance:   records,
	}, NewPayslipID(s.IDs, emp.ID), now)
	if err != nil {
		return PayslipResponse{}, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	if err := s.Repo.WithTx(tx).Save(ctx, slip); err != nil {
		log.Error("save payslip failed", zap.String("employee_id", emp.ID), zap.Error(err))
		return PayslipResponse{}, err
	}

	if s.Outbox != nil {
		if err := s.queueGenerated(ctx, tx, slip); err != nil {
			log.Error("payslip outbox persist failed", zap.String("payslip_id", slip.ID), zap.Error(err))
			return PayslipResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return PayslipResponse{}, err
	}

	log.Info("payslip generated",
		zap.String("payslip_id", slip.ID),
		zap.String("employee_id", slip.EmployeeID),
		zap.String("month", slip.Month),
		zap.Int64("net_salary", slip.NetSalary),
	)
	return mapToResponse(*slip), nil
}

func (s *service) queueGenerated(ctx context.Context, tx *sql.Tx, slip *Payslip) error {
	event := events.PayslipGeneratedEvent{
		EventType:   events.PayslipGeneratedEventType,
		PayslipID:   slip.ID,
		EmployeeID:  slip.EmployeeID,
		Month:       slip.Month,
		RequestedBy: contextutil.GetUserID(ctx),
		OccurredAt:  slip.GeneratedAt.UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.Outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payslip",
		AggregateID:   slip.ID,
		EventType:     event.EventType,
		Topic:         events.PayslipGeneratedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// GenerateAll runs Generate for every non-admin employee. A failure for one
// employee is reported in the result and does not stop the others.
func (s *service) GenerateAll(ctx context.Context, month string) (GenerateAllResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	month = strings.TrimSpace(month)
	if month == "" {
		month = s.Now().Format("2006-01")
	}
	if _, _, err := ParseMonth(month); err != nil {
		return GenerateAllResponse{}, err
	}

	emps, err := s.Employees.FindAll(ctx)
	if err != nil {
		return GenerateAllResponse{}, err
	}

	result := GenerateAllResponse{
		Month:     month,
		Generated: []PayslipResponse{},
		Failed:    []GenerateFailure{},
	}
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(generateAllConcurrency)
	for _, emp := range emps {
		if emp.IsAdmin() {
			continue
		}
		emp := emp
		g.Go(func() error {
			resp, err := s.Generate(ctx, emp.ID, month)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn("bulk generation failed for employee", zap.String("employee_id", emp.ID), zap.Error(err))
				result.Failed = append(result.Failed, GenerateFailure{
					EmployeeID: emp.ID,
					Reason:     apperror.ToHTTP(err).Message,
				})
				return nil
			}
			result.Generated = append(result.Generated, resp)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(result.Generated, func(i, j int) bool { return result.Generated[i].EmployeeID < result.Generated[j].EmployeeID })
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i].EmployeeID < result.Failed[j].EmployeeID })

	log.Info("bulk generation finished",
		zap.String("month", month),
		zap.Int("generated", len(result.Generated)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func (s *service) View(ctx context.Context, actor domain.Actor, id string) (PayslipView, error) {
	slip, err := s.find(ctx, id)
	if err != nil {
		return PayslipView{}, err
	}
	if !actor.CanAccess(slip.EmployeeID) {
		return PayslipView{}, apperror.ErrForbidden
	}

	view := PayslipView{PayslipResponse: mapToResponse(*slip)}
	if emp := s.profile(ctx, slip.EmployeeID); emp != nil {
		view.Employee = &EmployeeProfile{
			ID:                emp.ID,
			Name:              emp.Name,
			Email:             emp.Email,
			Phone:             emp.Phone,
			Role:              emp.Role,
			Department:        emp.Department,
			BankAccountNumber: emp.BankAccountNumber,
			PAN:               emp.PAN,
			PFAccountNumber:   emp.PFAccountNumber,
		}
	}
	return view, nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]PayslipResponse, error) {
	rows, err := s.Repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListLatest(ctx context.Context) ([]PayslipResponse, error) {
	rows, err := s.Repo.ListLatestPerEmployee(ctx, "")
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) RenderPDF(ctx context.Context, id string) (Document, error) {
	slip, err := s.find(ctx, id)
	if err != nil {
		return Document{}, err
	}
	data, err := s.renderPDF(ctx, slip)
	if err != nil {
		return Document{}, err
	}
	return Document{Filename: pdfFilename(slip.ID), ContentType: contentTypePDF, Data: data}, nil
}

func (s *service) RenderHTML(ctx context.Context, actor domain.Actor, id string) ([]byte, error) {
	slip, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(slip.EmployeeID) {
		return nil, apperror.ErrForbidden
	}

	out, err, _ := s.sf.Do("html:"+slip.ID, func() (any, error) {
		rctx, cancel := context.WithTimeout(ctx, s.RenderTimeout)
		defer cancel()
		return s.Renderer.HTML(rctx, s.renderView(ctx, slip))
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("html render failed", zap.String("payslip_id", slip.ID), zap.Error(err))
		return nil, payrollerrors.ErrRenderFailed.WithCause(err)
	}
	return out.([]byte), nil
}

// Email renders the payslip and sends it to req.To. The stored payslip is
// never modified, whatever the outcome.
func (s *service) Email(ctx context.Context, id string, req EmailPayslipRequest) (EmailPayslipResponse, error) {
	slip, err := s.find(ctx, id)
	if err != nil {
		return EmailPayslipResponse{}, err
	}
	if err := delivery.ValidateAddress(req.To); err != nil {
		return EmailPayslipResponse{}, err
	}

	to := strings.TrimSpace(req.To)
	key, err := s.deliver(ctx, slip, to, req.Subject, req.Text)
	if err != nil {
		return EmailPayslipResponse{}, err
	}

	return EmailPayslipResponse{
		PayslipID:  slip.ID,
		To:         to,
		Sent:       true,
		Message:    "Email sent successfully",
		ArchiveKey: key,
	}, nil
}

// SendToEmployee mails the payslip to the address on the employee record.
func (s *service) SendToEmployee(ctx context.Context, id string) error {
	slip, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	emp := s.profile(ctx, slip.EmployeeID)
	if emp == nil || !delivery.IsValidAddress(emp.Email) {
		return payrollerrors.ErrNoValidRecipient
	}

	_, err = s.deliver(ctx, slip, strings.TrimSpace(emp.Email), "", "")
	return err
}

func (s *service) deliver(ctx context.Context, slip *Payslip, to, subject, text string) (string, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if s.Sender == nil {
		return "", deliveryerrors.ErrUnconfigured
	}

	data, err := s.renderPDF(ctx, slip)
	if err != nil {
		return "", err
	}
	key := s.archiveDocument(ctx, slip, data)

	if subject == "" {
		subject = "Payslip " + slip.Month
	}
	if text == "" {
		text = "Please find attached your payslip for " + slip.Month
	}

	sctx, cancel := context.WithTimeout(ctx, s.SendTimeout)
	defer cancel()

	err = s.Sender.Send(sctx, delivery.Message{
		To:      to,
		Subject: subject,
		Text:    text,
		Attachment: &delivery.Attachment{
			Filename:    pdfFilename(slip.ID),
			ContentType: contentTypePDF,
			Data:        data,
		},
	})
	if err != nil {
		log.Warn("payslip email failed", zap.String("payslip_id", slip.ID), zap.Error(err))
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return "", err
		}
		return "", deliveryerrors.ErrDeliveryFailed.WithCause(err)
	}

	log.Info("payslip emailed", zap.String("payslip_id", slip.ID), zap.String("to", to))
	return key, nil
}

// archiveDocument uploads the rendered PDF and records its key. Failures
// are logged only.
func (s *service) archiveDocument(ctx context.Context, slip *Payslip, data []byte) string {
	log := contextutil.GetLogger(ctx, s.logger)

	key, err := s.Archive.Put(ctx, archive.PayslipKey(slip.EmployeeID, slip.ID), data, contentTypePDF)
	if err != nil {
		log.Warn("payslip archive upload failed", zap.String("payslip_id", slip.ID), zap.Error(err))
		return ""
	}
	if key == "" {
		return ""
	}

	err = s.Repo.SaveDocument(ctx, &PayslipDocument{
		ID:          uuid.New(),
		PayslipID:   slip.ID,
		StorageKey:  key,
		ContentType: contentTypePDF,
		SizeBytes:   int64(len(data)),
		CreatedAt:   s.Now().UTC(),
	})
	if err != nil {
		log.Warn("payslip document record failed", zap.String("payslip_id", slip.ID), zap.Error(err))
	}

	if url, err := s.Archive.URL(ctx, key, archiveURLTTL); err == nil && url != "" {
		log.Debug("payslip archived", zap.String("payslip_id", slip.ID), zap.String("url", url))
	}
	return key
}

func (s *service) ExportRegister(ctx context.Context, month string) (Document, error) {
	month = strings.TrimSpace(month)
	if month != "" {
		if _, _, err := ParseMonth(month); err != nil {
			return Document{}, err
		}
	}

	rows, err := s.Repo.ListLatestPerEmployee(ctx, month)
	if err != nil {
		return Document{}, err
	}

	data, err := buildRegister(rows)
	if err != nil {
		return Document{}, err
	}

	name := "payslip-register.xlsx"
	if month != "" {
		name = fmt.Sprintf("payslip-register-%s.xlsx", month)
	}
	return Document{Filename: name, ContentType: contentTypeXLSX, Data: data}, nil
}

func (s *service) renderPDF(ctx context.Context, slip *Payslip) ([]byte, error) {
	out, err, _ := s.sf.Do("pdf:"+slip.ID, func() (any, error) {
		rctx, cancel := context.WithTimeout(ctx, s.RenderTimeout)
		defer cancel()
		return s.Renderer.PDF(rctx, s.renderView(ctx, slip))
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("pdf render failed", zap.String("payslip_id", slip.ID), zap.Error(err))
		return nil, payrollerrors.ErrRenderFailed.WithCause(err)
	}
	return out.([]byte), nil
}

func (s *service) find(ctx context.Context, id string) (*Payslip, error) {
	slip, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayslipNotFound
		}
		return nil, err
	}
	return slip, nil
}

// profile loads the employee for display. A missing or unreadable record
// leaves the payslip without profile data.
func (s *service) profile(ctx context.Context, employeeID string) *employee.Employee {
	emp, err := s.Employees.FindByID(ctx, employeeID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("hydrate employee failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil
	}
	return emp
}

func (s *service) renderView(ctx context.Context, slip *Payslip) render.View {
	v := render.View{
		PayslipID:            slip.ID,
		EmployeeID:           slip.EmployeeID,
		EmployeeName:         slip.EmployeeName,
		Month:                slip.Month,
		GeneratedAt:          slip.GeneratedAt,
		AttendancePercentage: slip.AttendancePercentage,
		PaidDays:             slip.PaidDays,
		TotalDays:            slip.TotalDays,
		Earnings:             render.Earnings(slip.Earnings),
		Deductions:           render.Deductions(slip.Deductions),
		NetSalary:            slip.NetSalary,
		Remarks:              slip.Remarks,
	}
	if emp := s.profile(ctx, slip.EmployeeID); emp != nil {
		v.Employee = &render.Profile{
			Name:              emp.Name,
			Email:             emp.Email,
			Phone:             emp.Phone,
			Designation:       emp.Role,
			Department:        emp.Department,
			BankAccountNumber: emp.BankAccountNumber,
			PAN:               emp.PAN,
			PFAccountNumber:   emp.PFAccountNumber,
		}
	}
	return v
}

func pdfFilename(id string) string {
	return fmt.Sprintf("payslip-%s.pdf", id)
}

func mapToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:                   p.ID,
		EmployeeID:           p.EmployeeID,
		EmployeeName:         p.EmployeeName,
		Month:                p.Month,
		Year:                 p.Year,
		GeneratedDate:        p.GeneratedAt,
		AttendancePercentage: p.AttendancePercentage,
		PaidDays:             p.PaidDays,
		TotalDays:            p.TotalDays,
		Earnings:             p.Earnings,
		Deductions:           p.Deductions,
		NetSalary:            p.NetSalary,
		Remarks:              p.Remarks,
	}
}

func mapToListResponse(rows []Payslip) []PayslipResponse {
	resp := make([]PayslipResponse, len(rows))
	for i, p := range rows {
		resp[i] = mapToResponse(p)
	}
	return resp
}
