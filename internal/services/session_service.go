package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dix-marketplace/backend/internal/media"
	"github.com/dix-marketplace/backend/internal/models"
	"github.com/dix-marketplace/backend/internal/repositories"
	"github.com/dix-marketplace/backend/internal/storage"
	"github.com/dix-marketplace/backend/internal/wizard"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session binds one wizard run to its media workspace. A user may hold
// several sessions at once; each is isolated.
type Session struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Wizard *wizard.Controller
	Media  *media.Manager
}

// SessionService keeps live wizard sessions in memory. Drafts never
// touch the database until the final submission step commits them.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	ads     *AdService
	uploads *storage.Client

	previewDir     string
	previewBaseURL string
	maxFiles       int
	limits         media.Limits
	log            *zap.Logger
}

type SessionOpts struct {
	PreviewDir     string
	PreviewBaseURL string
	MaxFiles       int
	MaxFileSize    int64
}

func NewSessionService(ads *AdService, uploads *storage.Client, opts SessionOpts, log *zap.Logger) *SessionService {
	return &SessionService{
		sessions:       make(map[uuid.UUID]*Session),
		ads:            ads,
		uploads:        uploads,
		previewDir:     opts.PreviewDir,
		previewBaseURL: opts.PreviewBaseURL,
		maxFiles:       opts.MaxFiles,
		limits:         media.Limits{MaxFileSize: opts.MaxFileSize},
		log:            log,
	}
}

// Open creates a fresh session for the user, rooted at step one.
func (s *SessionService) Open(userID uuid.UUID) (*Session, error) {
	id := uuid.New()

	previews, err := media.NewDiskPreviews(
		filepath.Join(s.previewDir, id.String()),
		s.previewBaseURL+"/"+id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("create preview dir: %w", err)
	}

	manager := media.NewManager(previews, s.maxFiles, s.limits)
	session := &Session{
		ID:     id,
		UserID: userID,
		Media:  manager,
	}
	session.Wizard = wizard.NewController(userID, &draftSubmitter{
		session: session,
		ads:     s.ads,
		uploads: s.uploads,
		log:     s.log,
	})

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	s.log.Info("wizard session opened",
		zap.String("session_id", id.String()),
		zap.String("user_id", userID.String()),
	)
	return session, nil
}

// Get returns the session only when it belongs to the user.
func (s *SessionService) Get(id, userID uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok || session.UserID != userID {
		return nil, false
	}
	return session, true
}

// Close disposes the session and releases every preview it holds.
func (s *SessionService) Close(id, userID uuid.UUID) bool {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok && session.UserID == userID {
		delete(s.sessions, id)
	} else {
		ok = false
	}
	s.mu.Unlock()

	if ok {
		session.Media.ReleaseAll()
		s.log.Info("wizard session closed", zap.String("session_id", id.String()))
	}
	return ok
}

// CloseAll disposes every live session. Used at shutdown so preview
// files do not outlive the process.
func (s *SessionService) CloseAll() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.sessions = make(map[uuid.UUID]*Session)
	s.mu.Unlock()

	for _, session := range sessions {
		session.Media.ReleaseAll()
	}
}

// SessionsForUser lists ids of the user's live sessions.
func (s *SessionService) SessionsForUser(userID uuid.UUID) []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []uuid.UUID
	for id, session := range s.sessions {
		if session.UserID == userID {
			ids = append(ids, id)
		}
	}
	return ids
}

// draftSubmitter carries a completed draft across the storage and
// persistence boundaries. Previews are local scratch files; the real
// upload happens here, and the draft's image URLs are rewritten to the
// stored object URLs before the ad record is created.
type draftSubmitter struct {
	session *Session
	ads     *AdService
	uploads *storage.Client
	log     *zap.Logger
}

func (d *draftSubmitter) Submit(ctx context.Context, userID uuid.UUID, draft *models.Draft) (string, error) {
	if draft.Media == nil {
		return "", fmt.Errorf("draft has no media")
	}

	if err := d.uploadSet(ctx, userID, draft.Media.Images); err != nil {
		return "", err
	}
	if err := d.uploadSet(ctx, userID, draft.Media.VerificationImages); err != nil {
		return "", err
	}

	return d.ads.CreateAd(ctx, userID, draft)
}

func (d *draftSubmitter) uploadSet(ctx context.Context, userID uuid.UUID, images []models.AdImage) error {
	for i := range images {
		img := &images[i]
		f, ok := d.session.Media.FileData(img.ID)
		if !ok {
			return fmt.Errorf("image %s has no file data", img.ID)
		}

		path := fmt.Sprintf("%s/%s/%s", userID, img.Role, img.ID)
		meta := map[string]string{"original-name": f.Name}
		if img.VerificationRole != "" {
			meta["verification-role"] = img.VerificationRole
		}

		url, err := d.uploads.Upload(ctx, path, f.ContentType, f.Data, meta, nil)
		if err != nil {
			return fmt.Errorf("upload %s: %w", img.ID, err)
		}
		img.URL = url
	}
	return nil
}

func unmarshalRecord(r repositories.Record, dest any) error {
	return json.Unmarshal(r.Data, dest)
}
