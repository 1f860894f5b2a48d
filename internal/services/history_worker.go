package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"alfredoptarigan/occupation-classifier/internal/models"
	"alfredoptarigan/occupation-classifier/internal/repositories"
)

// HistoryRecorder persists classification results off the request path.
type HistoryRecorder interface {
	Start(ctx context.Context)
	Stop()
	Record(result *models.ClassificationResult) bool
}

type historyRecorder struct {
	repo        repositories.ClassificationRepository
	queue       chan *models.ClassificationRecord
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
	mu          sync.Mutex
	stopped     bool
	logger      *zap.Logger
}

func NewHistoryRecorder(
	repo repositories.ClassificationRepository,
	concurrency int,
	queueSize int,
	logger *zap.Logger,
) HistoryRecorder {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 1 {
		queueSize = 100
	}
	return &historyRecorder{
		repo:        repo,
		queue:       make(chan *models.ClassificationRecord, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		logger:      logger,
	}
}

// Start implements HistoryRecorder.
func (h *historyRecorder) Start(ctx context.Context) {
	h.logger.Info("🚀 Starting history recorder", zap.Int("workers", h.concurrency))

	for i := 0; i < h.concurrency; i++ {
		h.wg.Add(1)
		go h.processRecords(ctx, i+1)
	}
}

// Stop implements HistoryRecorder. Records already queued are persisted
// before it returns.
func (h *historyRecorder) Stop() {
	h.stopOnce.Do(func() {
		h.logger.Info("🛑 Stopping history recorder...")
		h.mu.Lock()
		h.stopped = true
		close(h.stopChan)
		h.mu.Unlock()
		h.wg.Wait()

		for {
			select {
			case record := <-h.queue:
				h.persist(0, record)
			default:
				h.logger.Info("✅ History recorder stopped")
				return
			}
		}
	})
}

// Record implements HistoryRecorder. It never blocks; a full queue or a
// stopped recorder drops the record and returns false.
func (h *historyRecorder) Record(result *models.ClassificationResult) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		h.logger.Warn("⚠️ History recorder stopped, dropping record", zap.String("id", result.ID.String()))
		return false
	}

	select {
	case h.queue <- models.NewClassificationRecord(result):
		return true
	default:
		h.logger.Warn("⚠️ History queue full, dropping record", zap.String("id", result.ID.String()))
		return false
	}
}

func (h *historyRecorder) processRecords(ctx context.Context, workerID int) {
	defer h.wg.Done()

	for {
		select {
		case <-h.stopChan:
			return
		case <-ctx.Done():
			return
		case record := <-h.queue:
			h.persist(workerID, record)
		}
	}
}

func (h *historyRecorder) persist(workerID int, record *models.ClassificationRecord) {
	if err := h.repo.Create(record); err != nil {
		h.logger.Error("❌ Failed to persist classification",
			zap.Int("worker", workerID),
			zap.String("id", record.ID.String()),
			zap.Error(err))
		return
	}
	h.logger.Debug("💾 Classification persisted",
		zap.Int("worker", workerID),
		zap.String("id", record.ID.String()))
}
