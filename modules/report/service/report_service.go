package service

import (
	"campusflow/core/constants"
	"campusflow/core/errors"
	"campusflow/core/utils"
	"campusflow/modules/report/dto"
	"campusflow/modules/report/entity"
	"campusflow/modules/report/mapper"
	"campusflow/modules/report/repository"
	userDto "campusflow/modules/user/dto"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type UserDirectory interface {
	Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]userDto.PublicProfile, error)
	CountUsers(ctx context.Context) (int, error)
}

type PendingEvents interface {
	CountPending(ctx context.Context) (int, error)
}

// ExistsFunc reports whether a report target of one type is still there.
type ExistsFunc func(ctx context.Context, id uuid.UUID) (bool, error)

type ReportService struct {
	repo    repository.ReportRepositoryInterface
	users   UserDirectory
	events  PendingEvents
	targets map[string]ExistsFunc
	now     func() time.Time
}

func NewReportService(repo repository.ReportRepositoryInterface, users UserDirectory, events PendingEvents, targets map[string]ExistsFunc) *ReportService {
	return &ReportService{
		repo:    repo,
		users:   users,
		events:  events,
		targets: targets,
		now:     time.Now,
	}
}

func (s *ReportService) CreateReport(ctx context.Context, userID uuid.UUID, req *dto.CreateReportRequest) (*dto.ReportResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid target_id", nil)
	}
	reason := utils.Sanitize(req.Reason)
	if reason == "" || utils.CharLen(reason) > constants.MaxReportReasonLength {
		return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("reason must be 1-%d characters", constants.MaxReportReasonLength), nil)
	}
	if exists, ok := s.targets[req.TargetType]; ok {
		found, err := exists(ctx, targetID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "failed to look up report target", err)
		}
		if !found {
			return nil, errors.NewAppError(errors.ErrNotFound, req.TargetType+" not found", nil)
		}
	}

	report := &entity.Report{
		ReporterID: userID,
		TargetType: req.TargetType,
		TargetID:   targetID,
		Reason:     reason,
		Status:     entity.StatusOpen,
	}
	report.Touch()
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create report", err)
	}
	resp := mapper.ToReportResponse(report, nil)
	return &resp, nil
}

// ListReports attaches reporter profiles with a single lookup.
func (s *ReportService) ListReports(ctx context.Context, status string) ([]dto.ReportResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	reports, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list reports", err)
	}
	ids := make([]uuid.UUID, len(reports))
	for i := range reports {
		ids[i] = reports[i].ReporterID
	}
	profiles, err := s.users.Profiles(ctx, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load reporters", err)
	}
	return mapper.ToReportResponses(reports, profiles), nil
}

func (s *ReportService) Review(ctx context.Context, adminID, id uuid.UUID, req *dto.ReviewRequest) (*dto.ReportResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	report, appErr := s.loadFor(ctx, id, entity.StatusReviewed)
	if appErr != nil {
		return nil, appErr
	}
	at := s.now().UTC()
	action := utils.Sanitize(req.Action)
	ok, err := s.repo.Review(ctx, id, adminID, action, at)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to review report", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrConflict, "report is no longer open", nil)
	}
	report.Status = entity.StatusReviewed
	report.ReviewedBy = &adminID
	report.ReviewedAt = &at
	report.Action = action
	resp := mapper.ToReportResponse(report, nil)
	return &resp, nil
}

func (s *ReportService) Close(ctx context.Context, id uuid.UUID) (*dto.ReportResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	report, appErr := s.loadFor(ctx, id, entity.StatusClosed)
	if appErr != nil {
		return nil, appErr
	}
	ok, err := s.repo.Close(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to close report", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrConflict, "report is already closed", nil)
	}
	report.Status = entity.StatusClosed
	resp := mapper.ToReportResponse(report, nil)
	return &resp, nil
}

// loadFor returns 404 for a missing report and 409 when it cannot move to next.
func (s *ReportService) loadFor(ctx context.Context, id uuid.UUID, next string) (*entity.Report, *errors.AppError) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get report", err)
	}
	if report == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "report not found", nil)
	}
	if !entity.CanMove(report.Status, next) {
		return nil, errors.NewAppError(errors.ErrConflict, fmt.Sprintf("report is %s and cannot become %s", report.Status, next), nil)
	}
	return report, nil
}

// Stats runs the three counts concurrently.
func (s *ReportService) Stats(ctx context.Context) (*dto.StatsResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var stats dto.StatsResponse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.PendingEvents, err = s.events.CountPending(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.OpenReports, err = s.repo.CountByStatus(gctx, entity.StatusOpen)
		return err
	})
	g.Go(func() (err error) {
		stats.Users, err = s.users.CountUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load stats", err)
	}
	return &stats, nil
}
