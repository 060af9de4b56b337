package bookings

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-scheduling/backend/internal/middleware"
	"github.com/aura-scheduling/backend/pkg/response"
)

// Lister is the listing operation the handler serves.
type Lister interface {
	List(ctx context.Context, viewer Viewer, in ListInput) (*ListResult, error)
}

// Handler handles booking HTTP endpoints.
type Handler struct {
	svc    Lister
	logger *zap.Logger
}

// NewHandler creates a bookings handler.
func NewHandler(svc Lister, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// ListQuery is the query string of GET /bookings. Id lists are read separately.
type ListQuery struct {
	Status         string     `form:"status" binding:"required,oneof=upcoming recurring past cancelled unconfirmed"`
	Limit          *int       `form:"limit" binding:"omitempty,min=1"`
	Cursor         *int       `form:"cursor" binding:"omitempty,min=0"`
	AfterStartDate *time.Time `form:"afterStartDate" time_format:"2006-01-02T15:04:05Z07:00"`
	BeforeEndDate  *time.Time `form:"beforeEndDate" time_format:"2006-01-02T15:04:05Z07:00"`
}

// List handles GET /bookings.
func (h *Handler) List(c *gin.Context) {
	viewer := Viewer{
		ID:    c.MustGet(middleware.ContextUserID).(int),
		Email: c.GetString(middleware.ContextUserEmail),
	}
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return
	}
	in := ListInput{
		Filters: Filters{
			Status:         Status(q.Status),
			AfterStartDate: q.AfterStartDate,
			BeforeEndDate:  q.BeforeEndDate,
		},
		Limit:  q.Limit,
		Cursor: q.Cursor,
	}
	var err error
	if in.Filters.TeamIDs, err = parseIDs(c.QueryArray("teamIds")); err != nil {
		response.BadRequest(c, "teamIds: "+err.Error())
		return
	}
	if in.Filters.UserIDs, err = parseIDs(c.QueryArray("userIds")); err != nil {
		response.BadRequest(c, "userIds: "+err.Error())
		return
	}
	if in.Filters.EventTypeIDs, err = parseIDs(c.QueryArray("eventTypeIds")); err != nil {
		response.BadRequest(c, "eventTypeIds: "+err.Error())
		return
	}

	res, err := h.svc.List(c.Request.Context(), viewer, in)
	if err != nil {
		if IsInputError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			h.logger.Error("invalid stored booking data", zap.Int("booking_id", verr.BookingID), zap.String("field", verr.Field), zap.Error(verr.Err))
		}
		response.Internal(c, "failed to list bookings")
		return
	}
	response.OK(c, res)
}

// parseIDs accepts repeated parameters, comma separated values, or both.
func parseIDs(values []string) ([]int, error) {
	var ids []int
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, errors.New("must be integers")
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
