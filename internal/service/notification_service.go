package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uks-api/internal/models"
)

type collectorKey struct{}

// NotificationCollector gathers the notifications raised while serving one request.
type NotificationCollector struct {
	mu    sync.Mutex
	items []models.Notification
}

// Items returns the collected notifications in emission order.
func (c *NotificationCollector) Items() []models.Notification {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Notification(nil), c.items...)
}

func (c *NotificationCollector) add(n models.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

// WithNotificationCollector attaches a fresh collector to ctx.
func WithNotificationCollector(ctx context.Context) (context.Context, *NotificationCollector) {
	collector := &NotificationCollector{}
	return context.WithValue(ctx, collectorKey{}, collector), collector
}

// NotificationCollectorFrom returns the collector attached to ctx, or nil.
func NotificationCollectorFrom(ctx context.Context) *NotificationCollector {
	collector, _ := ctx.Value(collectorKey{}).(*NotificationCollector)
	return collector
}

// NotificationService keeps a bounded feed of user-visible notifications, newest first.
type NotificationService struct {
	mu     sync.RWMutex
	feed   []models.Notification
	size   int
	logger *zap.Logger
	now    func() time.Time
}

// NewNotificationService constructs the feed. A non-positive size defaults to 50.
func NewNotificationService(size int, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if size <= 0 {
		size = 50
	}
	return &NotificationService{size: size, logger: logger, now: time.Now}
}

// Success emits a default notification.
func (s *NotificationService) Success(ctx context.Context, title, description string) {
	s.emit(ctx, title, description, models.VariantDefault)
}

// Failure emits a destructive notification.
func (s *NotificationService) Failure(ctx context.Context, title, description string) {
	s.emit(ctx, title, description, models.VariantDestructive)
}

func (s *NotificationService) emit(ctx context.Context, title, description string, variant models.NotificationVariant) {
	n := models.Notification{Title: title, Description: description, Variant: variant, CreatedAt: s.now().UTC()}

	s.mu.Lock()
	s.feed = append([]models.Notification{n}, s.feed...)
	if len(s.feed) > s.size {
		s.feed = s.feed[:s.size]
	}
	s.mu.Unlock()

	if collector := NotificationCollectorFrom(ctx); collector != nil {
		collector.add(n)
	}
	s.logger.Debug("notification emitted", zap.String("title", title), zap.String("variant", string(variant)))
}

// Recent returns up to limit notifications, newest first. A non-positive limit returns the whole feed.
func (s *NotificationService) Recent(limit int) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.feed) {
		limit = len(s.feed)
	}
	recent := make([]models.Notification, limit)
	copy(recent, s.feed[:limit])
	return recent
}
