package media

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/dix-marketplace/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePreviews counts live handles so tests can assert nothing leaks.
type fakePreviews struct {
	live atomic.Int64
}

func (f *fakePreviews) Generate(id string, _ File) (*Preview, error) {
	f.live.Add(1)
	return &Preview{
		URL: "/previews/" + id,
		release: func() error {
			f.live.Add(-1)
			return nil
		},
	}, nil
}

func jpeg(name string) File {
	return File{Name: name, ContentType: "image/jpeg", Data: []byte("jpegdata")}
}

func newTestManager(maxFiles int) (*Manager, *fakePreviews) {
	previews := &fakePreviews{}
	return NewManager(previews, maxFiles, Limits{}), previews
}

func TestAddFilesFirstBecomesPrimary(t *testing.T) {
	m, _ := newTestManager(10)

	added, rejected, err := m.AddFiles([]File{jpeg("a.jpg"), jpeg("b.jpg"), jpeg("c.jpg")})
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, added, 3)

	assert.True(t, added[0].IsPrimary)
	assert.False(t, added[1].IsPrimary)
	assert.False(t, added[2].IsPrimary)

	// A later batch never steals the primary flag.
	added2, _, err := m.AddFiles([]File{jpeg("d.jpg")})
	require.NoError(t, err)
	assert.False(t, added2[0].IsPrimary)

	primaries := 0
	for _, img := range m.Gallery() {
		if img.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestAddFilesCapacityRejectsWholeBatch(t *testing.T) {
	m, previews := newTestManager(3)

	_, _, err := m.AddFiles([]File{jpeg("a.jpg"), jpeg("b.jpg")})
	require.NoError(t, err)

	_, _, err = m.AddFiles([]File{jpeg("c.jpg"), jpeg("d.jpg")})
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 3, capErr.Max)
	assert.Equal(t, 2, capErr.Current)
	assert.Equal(t, 2, capErr.Batch)

	// Nothing from the rejected batch landed.
	assert.Len(t, m.Gallery(), 2)
	assert.Equal(t, int64(2), previews.live.Load())
}

func TestAddFilesPerFileRejectionContinues(t *testing.T) {
	m, _ := newTestManager(10)

	bad := File{Name: "huge.jpg", ContentType: "image/jpeg", Data: make([]byte, DefaultMaxFileSize+1)}
	wrongType := File{Name: "doc.pdf", ContentType: "application/pdf", Data: []byte("x")}
	empty := File{Name: "none.jpg", ContentType: "image/jpeg"}

	added, rejected, err := m.AddFiles([]File{bad, jpeg("ok.jpg"), wrongType, empty})
	require.NoError(t, err)

	require.Len(t, added, 1)
	assert.Equal(t, "/previews/"+added[0].ID, added[0].URL)
	assert.True(t, added[0].IsPrimary)

	require.Len(t, rejected, 3)
	assert.ErrorIs(t, rejected[0], ErrFileTooLarge)
	assert.ErrorIs(t, rejected[1], ErrUnsupportedType)
	assert.ErrorIs(t, rejected[2], ErrEmptyFile)
}

func TestSetPrimary(t *testing.T) {
	m, _ := newTestManager(10)
	added, _, err := m.AddFiles([]File{jpeg("a.jpg"), jpeg("b.jpg")})
	require.NoError(t, err)

	require.True(t, m.SetPrimary(added[1].ID))

	gallery := m.Gallery()
	assert.False(t, gallery[0].IsPrimary)
	assert.True(t, gallery[1].IsPrimary)

	// Unknown id changes nothing.
	assert.False(t, m.SetPrimary("missing"))
	gallery = m.Gallery()
	assert.True(t, gallery[1].IsPrimary)
}

func TestRemoveReassignsPrimaryAndReleasesPreview(t *testing.T) {
	m, previews := newTestManager(10)
	added, _, err := m.AddFiles([]File{jpeg("a.jpg"), jpeg("b.jpg"), jpeg("c.jpg")})
	require.NoError(t, err)
	require.Equal(t, int64(3), previews.live.Load())

	require.True(t, m.Remove(added[0].ID))

	gallery := m.Gallery()
	require.Len(t, gallery, 2)
	assert.True(t, gallery[0].IsPrimary)
	assert.Equal(t, int64(2), previews.live.Load())

	// Removing a non-primary image leaves the flag alone.
	require.True(t, m.Remove(gallery[1].ID))
	assert.True(t, m.Gallery()[0].IsPrimary)

	assert.False(t, m.Remove("missing"))
}

func TestVerificationImageReplacePerRole(t *testing.T) {
	m, previews := newTestManager(10)

	first, err := m.SetVerificationImage(models.VerificationRoleID, jpeg("id1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, models.ImageRoleVerification, first.Role)
	assert.False(t, m.VerificationComplete())

	// Replacing the same role releases the old preview and keeps one
	// image in the slot.
	second, err := m.SetVerificationImage(models.VerificationRoleID, jpeg("id2.jpg"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, m.VerificationImages(), 1)
	assert.Equal(t, int64(1), previews.live.Load())

	_, err = m.SetVerificationImage(models.VerificationRoleSelfie, jpeg("selfie.jpg"))
	require.NoError(t, err)
	_, err = m.SetVerificationImage(models.VerificationRoleNote, jpeg("note.jpg"))
	require.NoError(t, err)
	assert.True(t, m.VerificationComplete())

	_, err = m.SetVerificationImage("passport", jpeg("x.jpg"))
	assert.Error(t, err)

	bad := File{Name: "doc.pdf", ContentType: "application/pdf", Data: []byte("x")}
	_, err = m.SetVerificationImage(models.VerificationRoleID, bad)
	var fileErr *FileError
	assert.ErrorAs(t, err, &fileErr)
}

func TestVerificationImagesCanonicalOrder(t *testing.T) {
	m, _ := newTestManager(10)
	_, err := m.SetVerificationImage(models.VerificationRoleNote, jpeg("note.jpg"))
	require.NoError(t, err)
	_, err = m.SetVerificationImage(models.VerificationRoleID, jpeg("id.jpg"))
	require.NoError(t, err)
	_, err = m.SetVerificationImage(models.VerificationRoleSelfie, jpeg("selfie.jpg"))
	require.NoError(t, err)

	imgs := m.VerificationImages()
	require.Len(t, imgs, 3)
	assert.Equal(t, models.VerificationRoleID, imgs[0].VerificationRole)
	assert.Equal(t, models.VerificationRoleSelfie, imgs[1].VerificationRole)
	assert.Equal(t, models.VerificationRoleNote, imgs[2].VerificationRole)
}

func TestReleaseAllDropsEverything(t *testing.T) {
	m, previews := newTestManager(10)
	added, _, err := m.AddFiles([]File{jpeg("a.jpg"), jpeg("b.jpg")})
	require.NoError(t, err)
	_, err = m.SetVerificationImage(models.VerificationRoleID, jpeg("id.jpg"))
	require.NoError(t, err)
	require.Equal(t, int64(3), previews.live.Load())

	m.ReleaseAll()
	assert.Equal(t, int64(0), previews.live.Load())

	_, ok := m.FileData(added[0].ID)
	assert.False(t, ok)
}

func TestFileDataSurvivesUntilRelease(t *testing.T) {
	m, _ := newTestManager(10)
	added, _, err := m.AddFiles([]File{jpeg("a.jpg")})
	require.NoError(t, err)

	f, ok := m.FileData(added[0].ID)
	require.True(t, ok)
	assert.Equal(t, "a.jpg", f.Name)

	require.True(t, m.Remove(added[0].ID))
	_, ok = m.FileData(added[0].ID)
	assert.False(t, ok)
}

func TestValidateFileLimits(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		limits  Limits
		wantErr error
	}{
		{"accepted jpeg", jpeg("a.jpg"), Limits{}, nil},
		{"accepted png", File{Name: "a.png", ContentType: "image/png", Data: []byte("x")}, Limits{}, nil},
		{"empty", File{Name: "a.jpg", ContentType: "image/jpeg"}, Limits{}, ErrEmptyFile},
		{"too large", File{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("abcdef")}, Limits{MaxFileSize: 5}, ErrFileTooLarge},
		{"wrong type", File{Name: "a.gif", ContentType: "image/gif", Data: []byte("x")}, Limits{}, ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile(tt.file, tt.limits)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAssignPrimary(t *testing.T) {
	assert.True(t, AssignPrimary(0, 0))
	assert.False(t, AssignPrimary(0, 1))
	assert.False(t, AssignPrimary(2, 0))
}

// failingPreviews fails generation for a specific file name.
type failingPreviews struct {
	failName string
}

func (f *failingPreviews) Generate(id string, file File) (*Preview, error) {
	if file.Name == f.failName {
		return nil, errors.New("disk full")
	}
	return &Preview{URL: "/previews/" + id}, nil
}

func TestAddFilesPreviewFailureRejectsFile(t *testing.T) {
	m := NewManager(&failingPreviews{failName: "b.jpg"}, 10, Limits{})

	added, rejected, err := m.AddFiles([]File{jpeg("a.jpg"), jpeg("b.jpg"), jpeg("c.jpg")})
	require.NoError(t, err)
	assert.Len(t, added, 2)
	require.Len(t, rejected, 1)
	assert.Equal(t, "b.jpg", rejected[0].Name)
}
