package media

import (
	"fmt"
	"sync"

	"github.com/dix-marketplace/backend/internal/models"
	"github.com/google/uuid"
)

// Manager owns the gallery and verification image sets for one ad draft.
// Invariants: at most one gallery image is primary, and exactly one when
// the gallery is non-empty; the verification set holds at most one image
// per role. All mutations are serialized behind one mutex so concurrent
// add/remove/set-primary calls cannot race into two primaries or a
// leaked preview.
type Manager struct {
	mu sync.Mutex

	maxFiles int
	limits   Limits
	previews PreviewGenerator

	gallery      []models.AdImage
	verification map[string]models.AdImage
	handles      map[string]*Preview
	files        map[string]File
}

func NewManager(previews PreviewGenerator, maxFiles int, limits Limits) *Manager {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	return &Manager{
		maxFiles:     maxFiles,
		limits:       limits,
		previews:     previews,
		verification: make(map[string]models.AdImage),
		handles:      make(map[string]*Preview),
		files:        make(map[string]File),
	}
}

// AddFiles validates and appends a batch of gallery images. The whole
// batch is rejected with a CapacityError when it would exceed the
// gallery maximum. Individual invalid files are reported in the returned
// FileError slice while the remaining valid files are still added, in
// submission order. The first image accepted into an empty gallery
// becomes primary.
func (m *Manager) AddFiles(files []File) ([]models.AdImage, []*FileError, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.gallery)+len(files) > m.maxFiles {
		return nil, nil, &CapacityError{Max: m.maxFiles, Current: len(m.gallery), Batch: len(files)}
	}

	existing := len(m.gallery)
	var added []models.AdImage
	var rejected []*FileError

	// Files are processed strictly in submission order; primary
	// assignment depends on it.
	for _, f := range files {
		if err := ValidateFile(f, m.limits); err != nil {
			rejected = append(rejected, &FileError{Name: f.Name, Err: err})
			continue
		}

		id := uuid.New().String()
		preview, err := m.previews.Generate(id, f)
		if err != nil {
			rejected = append(rejected, &FileError{Name: f.Name, Err: err})
			continue
		}

		img := models.AdImage{
			ID:           id,
			URL:          preview.URL,
			Role:         models.ImageRoleGallery,
			IsPrimary:    AssignPrimary(existing, len(added)),
			ReviewStatus: models.ReviewStatusPending,
		}
		m.gallery = append(m.gallery, img)
		m.handles[id] = preview
		m.files[id] = f
		added = append(added, img)
	}

	return added, rejected, nil
}

// SetPrimary marks the given gallery image primary and clears the flag
// on all others. Unknown ids are a no-op, not an error.
func (m *Manager) SetPrimary(imageID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	for i := range m.gallery {
		if m.gallery[i].ID == imageID {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for i := range m.gallery {
		m.gallery[i].IsPrimary = m.gallery[i].ID == imageID
	}
	return true
}

// Remove deletes the image from whichever set contains it and releases
// its preview handle. When the removed gallery image was primary, the
// first remaining image inherits the flag so a non-empty gallery always
// has exactly one primary.
func (m *Manager) Remove(imageID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.gallery {
		if m.gallery[i].ID != imageID {
			continue
		}
		wasPrimary := m.gallery[i].IsPrimary
		m.gallery = append(m.gallery[:i], m.gallery[i+1:]...)
		if wasPrimary && len(m.gallery) > 0 {
			m.gallery[0].IsPrimary = true
		}
		m.releaseHandle(imageID)
		return true
	}

	for role, img := range m.verification {
		if img.ID == imageID {
			delete(m.verification, role)
			m.releaseHandle(imageID)
			return true
		}
	}
	return false
}

// SetVerificationImage validates the file like a gallery upload, then
// inserts or replaces the image at the given role slot. A second upload
// to the same role overwrites; it never duplicates.
func (m *Manager) SetVerificationImage(role string, f File) (models.AdImage, error) {
	if !models.IsValidVerificationRole(role) {
		return models.AdImage{}, fmt.Errorf("unknown verification role %q", role)
	}
	if err := ValidateFile(f, m.limits); err != nil {
		return models.AdImage{}, &FileError{Name: f.Name, Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	preview, err := m.previews.Generate(id, f)
	if err != nil {
		return models.AdImage{}, &FileError{Name: f.Name, Err: err}
	}

	if old, ok := m.verification[role]; ok {
		m.releaseHandle(old.ID)
	}

	img := models.AdImage{
		ID:               id,
		URL:              preview.URL,
		Role:             models.ImageRoleVerification,
		VerificationRole: role,
		ReviewStatus:     models.ReviewStatusPending,
	}
	m.verification[role] = img
	m.handles[id] = preview
	m.files[id] = f
	return img, nil
}

// VerificationComplete reports whether all three required roles hold an
// image.
func (m *Manager) VerificationComplete() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.verification) == len(models.VerificationRoles)
}

func (m *Manager) Gallery() []models.AdImage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AdImage, len(m.gallery))
	copy(out, m.gallery)
	return out
}

func (m *Manager) VerificationImages() []models.AdImage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AdImage, 0, len(m.verification))
	for _, role := range models.VerificationRoles {
		if img, ok := m.verification[role]; ok {
			out = append(out, img)
		}
	}
	return out
}

// Snapshot returns the media sub-record for the draft.
func (m *Manager) Snapshot() models.MediaData {
	return models.MediaData{
		Images:             m.Gallery(),
		VerificationImages: m.VerificationImages(),
	}
}

// ReleaseAll releases every preview handle. Called on session disposal.
func (m *Manager) ReleaseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.handles {
		m.releaseHandle(id)
	}
}

func (m *Manager) releaseHandle(id string) {
	if h, ok := m.handles[id]; ok {
		_ = h.Release()
		delete(m.handles, id)
	}
	delete(m.files, id)
}

// FileData returns the original bytes for an accepted image, for the
// hand-off to object storage at submission time.
func (m *Manager) FileData(imageID string) (File, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[imageID]
	return f, ok
}
