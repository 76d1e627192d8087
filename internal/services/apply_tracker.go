package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/yungbote/careerpulse-backend/internal/data/repos"
	types "github.com/yungbote/careerpulse-backend/internal/domain/career"
	"github.com/yungbote/careerpulse-backend/internal/platform/apierr"
	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

const (
	maxApplyRoleLen     = 120
	maxApplySourceLen   = 80
	maxApplyURLLen      = 2000
	maxApplyMatchTagLen = 80

	defaultApplyListLimit = 100
	maxApplyListLimit     = 300

	exportSheet    = "Applications"
	exportTimeForm = "2006-01-02 15:04"
)

var applyStatuses = map[string]struct{}{
	types.ApplyStatusPlanned:   {},
	types.ApplyStatusApplied:   {},
	types.ApplyStatusInterview: {},
	types.ApplyStatusOffer:     {},
	types.ApplyStatusRejected:  {},
}

type ApplyTrackerUpsert struct {
	Role     string  `json:"role"`
	Source   string  `json:"source"`
	URL      string  `json:"url"`
	MatchTag *string `json:"match_tag"`
	Status   string  `json:"status"`
}

type ApplyTrackerService interface {
	List(ctx context.Context, limit int) ([]*types.ApplyTrackerItem, error)
	Upsert(ctx context.Context, in ApplyTrackerUpsert) (*types.ApplyTrackerItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*types.ApplyTrackerItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExportXLSX(ctx context.Context) (*bytes.Buffer, error)
}

type applyTrackerService struct {
	db    *gorm.DB
	log   *logger.Logger
	clock clock.Clock
	items repos.ApplyTrackerRepo
}

func NewApplyTrackerService(db *gorm.DB, baseLog *logger.Logger, clk clock.Clock, items repos.ApplyTrackerRepo) ApplyTrackerService {
	if clk == nil {
		clk = clock.System()
	}
	return &applyTrackerService{
		db:    db,
		log:   baseLog.With("service", "ApplyTrackerService"),
		clock: clk,
		items: items,
	}
}

// NormalizeApplyStatus lowercases status and falls back to planned for anything unknown.
func NormalizeApplyStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if _, ok := applyStatuses[s]; ok {
		return s
	}
	return types.ApplyStatusPlanned
}

func clampApplyLimit(limit int) int {
	if limit <= 0 {
		return defaultApplyListLimit
	}
	return min(limit, maxApplyListLimit)
}

func (s *applyTrackerService) List(ctx context.Context, limit int) ([]*types.ApplyTrackerItem, error) {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.items.List(dbctx.Of(ctx), userID, clampApplyLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list apply tracker: %w", err)
	}
	if rows == nil {
		rows = []*types.ApplyTrackerItem{}
	}
	return rows, nil
}

func (s *applyTrackerService) Upsert(ctx context.Context, in ApplyTrackerUpsert) (*types.ApplyTrackerItem, error) {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}
	role := truncate(strings.TrimSpace(in.Role), maxApplyRoleLen)
	source := truncate(strings.TrimSpace(in.Source), maxApplySourceLen)
	url := truncate(strings.TrimSpace(in.URL), maxApplyURLLen)
	if role == "" || source == "" || url == "" {
		return nil, apierr.BadInput("invalid_apply_item", errors.New("role, source, and url are required"))
	}
	var tag *string
	if in.MatchTag != nil {
		if t := truncate(strings.TrimSpace(*in.MatchTag), maxApplyMatchTagLen); t != "" {
			tag = &t
		}
	}
	now := s.clock.Now()
	row, err := s.items.UpsertByURL(dbctx.Of(ctx), &types.ApplyTrackerItem{
		UserID:    userID,
		Role:      role,
		Source:    source,
		URL:       url,
		MatchTag:  tag,
		Status:    NormalizeApplyStatus(in.Status),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert apply tracker item: %w", err)
	}
	return row, nil
}

func (s *applyTrackerService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*types.ApplyTrackerItem, error) {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}
	var out *types.ApplyTrackerItem
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		ok, err := s.items.UpdateStatus(inner, userID, id, NormalizeApplyStatus(status), s.clock.Now())
		if err != nil {
			return fmt.Errorf("update apply tracker status: %w", err)
		}
		if !ok {
			return apierr.New(http.StatusNotFound, "apply_item_not_found", errors.New("Item not found"))
		}
		out, err = s.items.GetByID(inner, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *applyTrackerService) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return err
	}
	ok, err := s.items.Delete(dbctx.Of(ctx), userID, id)
	if err != nil {
		return fmt.Errorf("delete apply tracker item: %w", err)
	}
	if !ok {
		return apierr.New(http.StatusNotFound, "apply_item_not_found", errors.New("Item not found"))
	}
	return nil
}

// ExportXLSX renders every tracked application, newest update first, as one sheet.
func (s *applyTrackerService) ExportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	rows, err := s.List(ctx, maxApplyListLimit)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn("close xlsx workbook failed", "error", err)
		}
	}()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("name export sheet: %w", err)
	}
	header := []interface{}{"Role", "Source", "URL", "Match Tag", "Status", "Created At", "Updated At"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write export header: %w", err)
	}
	for i, r := range rows {
		tag := ""
		if r.MatchTag != nil {
			tag = *r.MatchTag
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			r.Role,
			r.Source,
			r.URL,
			tag,
			r.Status,
			r.CreatedAt.UTC().Format(exportTimeForm),
			r.UpdatedAt.UTC().Format(exportTimeForm),
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write export row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(exportSheet, "A", "B", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(exportSheet, "C", "C", 60); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	s.log.Debug("apply tracker exported", "rows", len(rows))
	return buf, nil
}
