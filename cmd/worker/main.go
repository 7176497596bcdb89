package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dix-marketplace/backend/internal/config"
	"github.com/dix-marketplace/backend/internal/db"
	"github.com/dix-marketplace/backend/internal/events"
	"github.com/dix-marketplace/backend/internal/models"
	"github.com/dix-marketplace/backend/internal/repositories"
	"github.com/dix-marketplace/backend/internal/services"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// The worker bridges moderation decisions into the ad store and retires
// ads whose paid period ran out.
func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	store := repositories.NewDocumentStore(pool)
	bus := events.NewRedisBus(rdb, log)
	adService := services.NewAdService(store, bus, log)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down worker")
		cancel()
	}()

	log.Info("worker started")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runModerationBridge(gctx, bus, store, adService, log) })
	g.Go(func() error { return runExpirySweeper(gctx, store, bus, log) })

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Fatal("worker error", zap.Error(err))
	}
}

// runModerationBridge applies image review decisions to stored records
// and promotes or rejects the ad once the verdict is complete: all
// images approved moves the ad to active, any rejection moves it to
// rejected.
func runModerationBridge(ctx context.Context, bus *events.RedisBus, store *repositories.DocumentStore, adService *services.AdService, log *zap.Logger) error {
	err := bus.Subscribe(ctx, events.StreamModeration, func(event events.Event) {
		if event.Type != events.EventImageReviewChanged {
			return
		}
		imageID, _ := event.Payload["image_id"].(string)
		status, _ := event.Payload["status"].(string)
		if imageID == "" || status == "" {
			return
		}

		if err := adService.SetImageReviewStatus(ctx, imageID, status); err != nil {
			log.Error("failed to apply review status",
				zap.String("image_id", imageID), zap.Error(err))
			return
		}
		log.Info("image review applied",
			zap.String("image_id", imageID), zap.String("status", status))

		adID, _ := event.Payload["ad_id"].(string)
		if adID != "" {
			settleAdStatus(ctx, store, bus, adID, log)
		}
	})
	if err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func settleAdStatus(ctx context.Context, store *repositories.DocumentStore, bus *events.RedisBus, adID string, log *zap.Logger) {
	records, err := store.QueryRecords(ctx, services.CollectionImages, map[string]any{"ad_id": adID}, 100, 0)
	if err != nil {
		log.Error("failed to load ad images", zap.String("ad_id", adID), zap.Error(err))
		return
	}

	allApproved := len(records) > 0
	anyRejected := false
	for _, r := range records {
		var img struct {
			ReviewStatus string `json:"review_status"`
		}
		if err := json.Unmarshal(r.Data, &img); err != nil {
			continue
		}
		if img.ReviewStatus != models.ReviewStatusApproved {
			allApproved = false
		}
		if img.ReviewStatus == models.ReviewStatusRejected {
			anyRejected = true
		}
	}

	var next string
	switch {
	case anyRejected:
		next = models.AdStatusRejected
	case allApproved:
		next = models.AdStatusActive
	default:
		return
	}

	var ad models.Advertisement
	if err := store.GetRecord(ctx, services.CollectionAds, adID, &ad); err != nil {
		log.Error("failed to load ad", zap.String("ad_id", adID), zap.Error(err))
		return
	}
	if !models.IsValidAdTransition(ad.Status, next) {
		return
	}

	if err := store.UpdateRecord(ctx, services.CollectionAds, adID, map[string]any{"status": next}); err != nil {
		log.Error("failed to update ad status", zap.String("ad_id", adID), zap.Error(err))
		return
	}
	log.Info("ad status settled", zap.String("ad_id", adID), zap.String("status", next))

	_ = bus.Publish(ctx, events.StreamAds, events.Event{
		Type: events.EventAdStatusChanged,
		Payload: map[string]any{
			"ad_id":   adID,
			"user_id": ad.UserID.String(),
			"status":  next,
		},
	})
}

// runExpirySweeper moves active ads past their paid period to expired.
func runExpirySweeper(ctx context.Context, store *repositories.DocumentStore, bus *events.RedisBus, log *zap.Logger) error {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sweepExpired(ctx, store, bus, log)
		}
	}
}

func sweepExpired(ctx context.Context, store *repositories.DocumentStore, bus *events.RedisBus, log *zap.Logger) {
	records, err := store.QueryRecords(ctx, services.CollectionAds, map[string]any{"status": models.AdStatusActive}, 100, 0)
	if err != nil {
		log.Error("failed to list active ads", zap.Error(err))
		return
	}

	now := time.Now().UTC()
	for _, r := range records {
		var ad models.Advertisement
		if err := json.Unmarshal(r.Data, &ad); err != nil {
			continue
		}
		if ad.ExpiresAt.After(now) {
			continue
		}

		if err := store.UpdateRecord(ctx, services.CollectionAds, r.ID, map[string]any{"status": models.AdStatusExpired}); err != nil {
			log.Error("failed to expire ad", zap.String("ad_id", r.ID), zap.Error(err))
			continue
		}
		log.Info("ad expired", zap.String("ad_id", r.ID))

		_ = bus.Publish(ctx, events.StreamAds, events.Event{
			Type: events.EventAdStatusChanged,
			Payload: map[string]any{
				"ad_id":   r.ID,
				"user_id": ad.UserID.String(),
				"status":  models.AdStatusExpired,
			},
		})
	}
}
