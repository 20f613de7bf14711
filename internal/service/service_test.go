package service

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dan9191/gallery-service/internal/apperrors"
	"github.com/Dan9191/gallery-service/internal/auth"
	"github.com/Dan9191/gallery-service/internal/config"
	"github.com/Dan9191/gallery-service/internal/models"
	"github.com/Dan9191/gallery-service/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR fake pixel data")

func newTestService(t *testing.T) (*Service, *repository.Memory, *auth.TokenService) {
	t.Helper()
	store := repository.NewMemory()
	tokens := auth.NewTokenService("test-secret")
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{
		UploadDir: t.TempDir(),
		PublicURL: "http://localhost:8080",
	}
	return NewService(store, tokens, nil, log, cfg), store, tokens
}

func errKind(t *testing.T, err error) apperrors.Kind {
	t.Helper()
	appErr, ok := err.(*apperrors.Error)
	require.True(t, ok, "expected *apperrors.Error, got %T", err)
	return appErr.Kind
}

func TestRegisterAssignsSequentialIDs(t *testing.T) {
	svc, store, _ := newTestService(t)

	require.NoError(t, svc.Register("a@example.com", "password123", "a"))
	require.NoError(t, svc.Register("b@example.com", "password123", "b"))
	require.NoError(t, svc.Register("c@example.com", "password123", "c"))

	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		user, err := store.FindUserByEmail(email)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), user.ID)
		assert.True(t, user.IsActive)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	cases := []struct {
		name                      string
		email, password, username string
	}{
		{"email", "", "password123", "user"},
		{"password", "u@example.com", "", "user"},
		{"username", "u@example.com", "password123", ""},
	}
	for _, tc := range cases {
		err := svc.Register(tc.email, tc.password, tc.username)
		require.Error(t, err, "missing %s", tc.name)
		assert.Equal(t, apperrors.KindValidation, errKind(t, err))
		assert.Contains(t, err.Error(), "required")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	require.NoError(t, svc.Register("t@example.com", "password123", "one"))

	err := svc.Register("t@example.com", "different456", "two")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, errKind(t, err))
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, 400, apperrors.Status(err))
}

func TestRegisterStoresIrreversibleHash(t *testing.T) {
	svc, store, _ := newTestService(t)

	require.NoError(t, svc.Register("t@example.com", "password123", "t"))

	user, err := store.FindUserByEmail("t@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

func TestLoginReturnsVerifiableToken(t *testing.T) {
	svc, store, tokens := newTestService(t)

	require.NoError(t, svc.Register("t@example.com", "password123", "t"))
	user, err := store.FindUserByEmail("t@example.com")
	require.NoError(t, err)

	token, err := svc.Login("t@example.com", "password123")
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLoginEnumerationSafety(t *testing.T) {
	svc, _, _ := newTestService(t)

	require.NoError(t, svc.Register("known@example.com", "password123", "t"))

	wrongPassword := svc.mustLoginErr(t, "known@example.com", "wrongpass")
	unknownEmail := svc.mustLoginErr(t, "unknown@example.com", "password123")

	// Identical message and status for both failure modes
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, 401, apperrors.Status(wrongPassword))
	assert.Equal(t, 401, apperrors.Status(unknownEmail))
}

func (s *Service) mustLoginErr(t *testing.T, email, password string) error {
	t.Helper()
	_, err := s.Login(email, password)
	require.Error(t, err)
	return err
}

func TestLoginMissingFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	for _, c := range [][2]string{{"", "p"}, {"e@example.com", ""}, {"", ""}} {
		_, err := svc.Login(c[0], c[1])
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, errKind(t, err))
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, store, _ := newTestService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(&models.User{
		ID:           1,
		Username:     "frozen",
		Email:        "frozen@example.com",
		PasswordHash: string(hash),
		IsActive:     false,
		CreatedAt:    time.Now(),
	}))

	// Refused regardless of password correctness
	for _, password := range []string{"password123", "wrongpass"} {
		_, err = svc.Login("frozen@example.com", password)
		require.Error(t, err, "password %q", password)
		assert.Equal(t, apperrors.KindInactive, errKind(t, err))
		assert.Equal(t, 403, apperrors.Status(err))
	}
}

func TestCreateImageSequentialIDs(t *testing.T) {
	svc, _, _ := newTestService(t)

	first, err := svc.CreateImage(1, "a")
	require.NoError(t, err)
	second, err := svc.CreateImage(1, "b")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestCreateImageRequiresTitle(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateImage(1, "")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, errKind(t, err))
}

func TestUploadImageOwnershipGuard(t *testing.T) {
	svc, _, _ := newTestService(t)

	img, err := svc.CreateImage(1, "mine")
	require.NoError(t, err)

	_, err = svc.UploadImage(2, img.ID, pngBytes, "photo.png")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, errKind(t, err))
	assert.Equal(t, 403, apperrors.Status(err))
}

func TestUploadImageWritesFileAndMetadata(t *testing.T) {
	svc, store, _ := newTestService(t)

	img, err := svc.CreateImage(1, "mine")
	require.NoError(t, err)

	uploaded, err := svc.UploadImage(1, img.ID, pngBytes, "photo.png")
	require.NoError(t, err)
	assert.Equal(t, "1.png", uploaded.Filename)
	assert.Equal(t, "image/png", uploaded.MimeType)

	data, err := os.ReadFile(filepath.Join(svc.config.UploadDir, "1.png"))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	stored, err := store.FindImageByID(img.ID)
	require.NoError(t, err)
	assert.Equal(t, "1.png", stored.Filename)
	assert.Equal(t, "image/png", stored.MimeType)
}

func TestUploadImageReadsXMPShotDate(t *testing.T) {
	svc, store, _ := newTestService(t)

	img, err := svc.CreateImage(1, "dated")
	require.NoError(t, err)

	packet := `<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about="" xmlns:exif="http://ns.adobe.com/exif/1.0/">
   <exif:DateTimeOriginal>2020-05-01T09:00:00Z</exif:DateTimeOriginal>
  </rdf:Description>
 </rdf:RDF>
</x:xmpmeta>`
	data := append(append([]byte{}, pngBytes...), []byte(packet)...)

	_, err = svc.UploadImage(1, img.ID, data, "photo.png")
	require.NoError(t, err)

	stored, err := store.FindImageByID(img.ID)
	require.NoError(t, err)
	want, _ := time.Parse(time.RFC3339, "2020-05-01T09:00:00Z")
	assert.True(t, stored.ShotDate.Equal(want))
}

func TestUploadImageNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UploadImage(1, 999, pngBytes, "photo.png")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, errKind(t, err))
}

func TestCollectionOrdering(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateCollection(1, "first", "")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = svc.CreateCollection(1, "second", "")
	require.NoError(t, err)

	collections, err := svc.ListCollections()
	require.NoError(t, err)
	require.Len(t, collections, 2)
	assert.Equal(t, "second", collections[0].Name)
	assert.Equal(t, "first", collections[1].Name)
}

func TestUpdateCollectionPartial(t *testing.T) {
	svc, _, _ := newTestService(t)

	c, err := svc.CreateCollection(1, "Original Name", "Original description")
	require.NoError(t, err)

	newName := "Updated Name"
	updated, err := svc.UpdateCollection(c.ID, &newName, nil)
	require.NoError(t, err)
	assert.Equal(t, "Updated Name", updated.Name)
	assert.Equal(t, "Original description", updated.Description)

	newDesc := "Updated description"
	updated, err = svc.UpdateCollection(c.ID, nil, &newDesc)
	require.NoError(t, err)
	assert.Equal(t, "Updated Name", updated.Name)
	assert.Equal(t, "Updated description", updated.Description)
}

func TestDeleteCollection(t *testing.T) {
	svc, _, _ := newTestService(t)

	c, err := svc.CreateCollection(1, "doomed", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCollection(c.ID))

	_, err = svc.GetCollection(c.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, errKind(t, err))

	err = svc.DeleteCollection(c.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, errKind(t, err))
}
