package service

import (
	"context"

	"github.com/dustatron/mcpoker/internal/model"
	"github.com/dustatron/mcpoker/internal/repository"
)

// HistoryService reads archived rounds. Entries are only written and trimmed
// as a side effect of a round reset, and only bulk-deleted by room cleanup.
type HistoryService struct {
	historyRepo repository.HistoryRepo
}

// NewHistoryService creates a new history service
func NewHistoryService(historyRepo repository.HistoryRepo) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// History returns up to the retention cap of entries, newest round first
func (s *HistoryService) History(ctx context.Context, roomID string) ([]*model.HistoryEntry, error) {
	return s.historyRepo.ListByRoomDesc(ctx, roomID, model.HistoryRetention)
}

// LatestRound returns the most recent entry, or nil if none exists
func (s *HistoryService) LatestRound(ctx context.Context, roomID string) (*model.HistoryEntry, error) {
	return s.historyRepo.LatestByRoom(ctx, roomID)
}

// RoundCount returns how many entries the room currently stores
func (s *HistoryService) RoundCount(ctx context.Context, roomID string) (int, error) {
	return s.historyRepo.CountByRoom(ctx, roomID)
}
