package catalog

import (
	"context"

	"github.com/cleitonzila/n64-checklist/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("github.com/cleitonzila/n64-checklist/catalog")

// OwnershipReader is the read side of the ownership store.
type OwnershipReader interface {
	OwnedIDs(ctx context.Context, userID, platform string, gameIDs []string) (map[string]struct{}, error)
	CountOwned(ctx context.Context, userID, platform string) (int64, error)
}

// Service joins the two catalog stores with the ownership store in application code.
type Service struct {
	ps1            *gorm.DB
	n64            *gorm.DB
	owners         OwnershipReader
	publicViewerID string
}

func NewService(ps1, n64 *gorm.DB, owners OwnershipReader, publicViewerID string) *Service {
	return &Service{ps1: ps1, n64: n64, owners: owners, publicViewerID: publicViewerID}
}

// ViewerID returns userID, or the public viewer for anonymous reads.
func (s *Service) ViewerID(userID string) string {
	if userID != "" {
		return userID
	}
	return s.publicViewerID
}

// ListGames returns one page of grouped games for the console in params.
// userID may be empty; the public viewer's ownership is shown then.
func (s *Service) ListGames(ctx context.Context, params models.ListParams, userID string) (*models.ListResult, error) {
	q := normalize(params)
	viewer := s.ViewerID(userID)

	ctx, span := tracer.Start(ctx, "catalog.ListGames")
	defer span.End()
	span.SetAttributes(
		attribute.String("console", q.console),
		attribute.Int("page", q.page),
		attribute.Int("limit", q.limit),
		attribute.String("sort", q.sort),
	)

	var (
		games []models.GroupedGame
		total int64
		err   error
	)
	if q.console == models.PlatformN64 {
		games, total, err = s.listN64(ctx, q, viewer)
	} else {
		games, total, err = s.listPS1(ctx, q, viewer)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if games == nil {
		games = []models.GroupedGame{}
	}
	span.SetAttributes(attribute.Int64("total", total))

	return &models.ListResult{Games: games, Metadata: metadata(q, total)}, nil
}
