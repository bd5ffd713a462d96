package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, actor domain.Actor, req UpsertAttendanceRequest) (AttendanceResponse, error)
	List(ctx context.Context, actor domain.Actor, filter ListFilter) ([]AttendanceResponse, error)
	ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Upsert records the status of one employee on one day, replacing any status
// already recorded for that day. Employees may only write their own records.
func (s *service) Upsert(ctx context.Context, actor domain.Actor, req UpsertAttendanceRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if !actor.CanAccess(employeeID) {
		return AttendanceResponse{}, apperror.ErrForbidden
	}

	row, err := normalize(employeeID, req.Date, req.Status, SourceManual)
	if err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if !exists {
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	if err := qtx.Upsert(ctx, row); err != nil {
		log.Error("attendance upsert failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	stored, err := qtx.FindByEmployeeAndDate(ctx, employeeID, row.Date)
	if err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	log.Info("attendance recorded",
		zap.String("employee_id", employeeID),
		zap.String("date", stored.Date),
		zap.String("status", stored.Status),
	)
	return mapToResponse(*stored), nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, filter ListFilter) ([]AttendanceResponse, error) {
	filter.EmployeeID = strings.TrimSpace(filter.EmployeeID)
	filter.Month = strings.TrimSpace(filter.Month)

	if !actor.IsAdmin() {
		if filter.EmployeeID != "" && filter.EmployeeID != actor.EmployeeID {
			return nil, apperror.ErrForbidden
		}
		filter.EmployeeID = actor.EmployeeID
	}
	if filter.Month != "" {
		if _, err := time.Parse("2006-01", filter.Month); err != nil {
			return nil, attendanceerrors.ErrInvalidMonth
		}
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// ImportCSV upserts every valid row of a CSV file with header
// employee_id,date,status in one transaction. Invalid rows and unknown
// employees are skipped and reported; a database failure aborts the import.
func (s *service) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	var rows []*CSVRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		log.Warn("attendance import parse failed", zap.Error(err))
		return ImportResult{}, attendanceerrors.ErrInvalidCSV.WithCause(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	known := map[string]bool{}
	var result ImportResult

	for i, in := range rows {
		line := i + 2 // header is line 1
		skip := func(reason string) {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{Line: line, Reason: reason})
		}

		employeeID := strings.TrimSpace(in.EmployeeID)
		row, err := normalize(employeeID, in.Date, in.Status, SourceCSV)
		if err != nil {
			skip(apperror.ToHTTP(err).Message)
			continue
		}

		exists, seen := known[employeeID]
		if !seen {
			if exists, err = qtx.EmployeeExists(ctx, employeeID); err != nil {
				return ImportResult{}, err
			}
			known[employeeID] = exists
		}
		if !exists {
			skip(fmt.Sprintf("unknown employee %q", employeeID))
			continue
		}

		_, err = qtx.FindByEmployeeAndDate(ctx, employeeID, row.Date)
		switch {
		case err == nil:
			result.Updated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			result.Inserted++
		default:
			return ImportResult{}, err
		}

		if err := qtx.Upsert(ctx, row); err != nil {
			log.Error("attendance import upsert failed", zap.Int("line", line), zap.Error(err))
			return ImportResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, err
	}

	log.Info("attendance import finished",
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func normalize(employeeID, date, status, source string) (*Attendance, error) {
	if employeeID == "" {
		return nil, apperror.RequiredField("Employee Id")
	}
	date = strings.TrimSpace(date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, attendanceerrors.ErrStatusRequired
	}

	now := time.Now().UTC()
	return &Attendance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
		Source:     source,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		Status:     a.Status,
		Source:     a.Source,
	}
}
