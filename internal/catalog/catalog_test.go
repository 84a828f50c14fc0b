package catalog

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sreeharips1/portfolio/internal/content"
)

func openCatalog(t *testing.T) (*Catalog, *content.Content) {
	t.Helper()
	c, err := content.Load()
	require.NoError(t, err)
	cat, err := Open(c)
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return cat, c
}

func TestCertificationsKeepDisplayOrder(t *testing.T) {
	cat, c := openCatalog(t)

	assert.Equal(t, len(c.Certifications), cat.CertificationCount())

	certs, err := cat.Certifications()
	require.NoError(t, err)
	assert.Equal(t, c.Certifications, certs)

	for i, want := range c.Certifications {
		got, err := cat.Certification(i)
		require.NoError(t, err)
		assert.Equal(t, want.ImagePath, got.ImagePath)
		assert.Equal(t, want.Skills, got.Skills)
	}
}

func TestCertificationOutOfRange(t *testing.T) {
	cat, _ := openCatalog(t)

	_, err := cat.Certification(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProjectByID(t *testing.T) {
	cat, _ := openCatalog(t)

	p, err := cat.Project("petcare")
	require.NoError(t, err)
	assert.Equal(t, "Pet Care System", p.Title)
	assert.Equal(t, "https://github.com/Sreeharips1/petfeeder_miniproject.git", p.GithubURL)
	assert.Empty(t, p.ReportURL)
	assert.Len(t, p.Features, 4)

	_, err = cat.Project("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProjectsInOrder(t *testing.T) {
	cat, _ := openCatalog(t)

	projects, err := cat.Projects()
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "agriculture", projects[0].ID)
	assert.Equal(t, []string{"/projects/agri1.jpg", "/projects/agri2.jpg", "/projects/agri3.jpg"}, projects[0].Photos)
	assert.Equal(t, "petcare", projects[1].ID)
}
