package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dix-marketplace/backend/internal/events"
	"github.com/dix-marketplace/backend/internal/models"
	"github.com/dix-marketplace/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CollectionAds    = "advertisements"
	CollectionImages = "images"
	CollectionUsers  = "users"
	CollectionAudit  = "audit_logs"
)

// AdService owns the boundary between a completed draft and the
// persistence collaborator.
type AdService struct {
	store     *repositories.DocumentStore
	publisher events.Publisher
	log       *zap.Logger
}

func NewAdService(store *repositories.DocumentStore, publisher events.Publisher, log *zap.Logger) *AdService {
	return &AdService{store: store, publisher: publisher, log: log}
}

// CreateAd persists a fully validated draft as one logical operation:
// the ad record, its image records and the audit entry commit together
// or not at all. Returns the new ad id.
func (s *AdService) CreateAd(ctx context.Context, userID uuid.UUID, draft *models.Draft) (string, error) {
	if draft.Location == nil || draft.Details == nil || draft.Media == nil ||
		draft.Booking == nil || draft.Package == nil || draft.Payment == nil {
		return "", fmt.Errorf("draft is incomplete")
	}

	now := time.Now().UTC()
	adID := uuid.New()

	images := make([]models.AdImage, 0, len(draft.Media.Images)+len(draft.Media.VerificationImages))
	images = append(images, draft.Media.Images...)
	images = append(images, draft.Media.VerificationImages...)

	ad := models.Advertisement{
		ID:           adID,
		UserID:       userID,
		Status:       models.AdStatusPending,
		Location:     *draft.Location,
		Details:      *draft.Details,
		Images:       images,
		Booking:      *draft.Booking,
		Package:      *draft.Package,
		ContactEmail: draft.Payment.Email,
		ContactPhone: draft.Payment.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    now.AddDate(0, 0, draft.Package.Duration),
	}

	err := s.store.InTx(ctx, func(tx *repositories.DocumentStore) error {
		if err := tx.PutRecord(ctx, CollectionAds, adID.String(), ad); err != nil {
			return err
		}
		for _, img := range images {
			ref := map[string]any{
				"id":            img.ID,
				"ad_id":         adID.String(),
				"user_id":       userID.String(),
				"url":           img.URL,
				"role":          img.Role,
				"is_primary":    img.IsPrimary,
				"review_status": img.ReviewStatus,
			}
			if img.VerificationRole != "" {
				ref["verification_role"] = img.VerificationRole
			}
			if err := tx.PutRecord(ctx, CollectionImages, img.ID, ref); err != nil {
				return err
			}
		}
		key, entry := newAuditLog(userID, "ad_submitted", "advertisement", adID.String(), now)
		return tx.PutRecord(ctx, CollectionAudit, key, entry)
	})
	if err != nil {
		return "", err
	}

	_ = s.publisher.Publish(ctx, events.StreamAds, events.Event{
		Type: events.EventAdSubmitted,
		Payload: map[string]any{
			"ad_id":   adID.String(),
			"user_id": userID.String(),
			"tier":    draft.Package.Tier,
		},
	})

	s.log.Info("advertisement created",
		zap.String("ad_id", adID.String()),
		zap.String("tier", draft.Package.Tier),
		zap.Int("images", len(images)),
	)
	return adID.String(), nil
}

func (s *AdService) GetByID(ctx context.Context, id string, userID uuid.UUID) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := s.store.GetRecord(ctx, CollectionAds, id, &ad); err != nil {
		return nil, err
	}
	if ad.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return &ad, nil
}

func (s *AdService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Advertisement, error) {
	records, err := s.store.QueryRecords(ctx, CollectionAds,
		map[string]any{"user_id": userID.String()}, limit, offset)
	if err != nil {
		return nil, err
	}

	ads := make([]models.Advertisement, 0, len(records))
	for _, r := range records {
		var ad models.Advertisement
		if err := unmarshalRecord(r, &ad); err != nil {
			s.log.Warn("skipping malformed ad record", zap.String("id", r.ID), zap.Error(err))
			continue
		}
		ads = append(ads, ad)
	}
	return ads, nil
}

// SetImageReviewStatus applies a moderation decision to a stored image
// reference. Only moderation flows through here; the wizard core never
// sets review status itself.
func (s *AdService) SetImageReviewStatus(ctx context.Context, imageID, status string) error {
	switch status {
	case models.ReviewStatusApproved, models.ReviewStatusRejected, models.ReviewStatusPending:
	default:
		return fmt.Errorf("invalid review status %q", status)
	}
	return s.store.UpdateRecord(ctx, CollectionImages, imageID, map[string]any{
		"review_status": status,
	})
}

// newAuditLog builds an audit entry keyed by its own id, so the
// document key and the embedded record id always agree.
func newAuditLog(actor uuid.UUID, action, entityType, entityID string, at time.Time) (string, models.AuditLog) {
	id := uuid.New()
	return id.String(), models.AuditLog{
		ID:          id,
		ActorUserID: &actor,
		ActorType:   "user",
		Action:      action,
		EntityType:  entityType,
		EntityID:    &entityID,
		CreatedAt:   at,
	}
}
