package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "SREEHARI P SHAIJU", c.Profile.Name)
	assert.Equal(t, "sreehariwsree@gmail.com", c.Profile.Email)
	assert.Equal(t, "Sreehari_P_Shaiju_Resume.pdf", c.Profile.ResumeFile())
	require.Len(t, c.Certifications, 5)
	assert.Equal(t, "/certificates/webgeon-cert.jpg", c.Certifications[0].ImagePath)
	assert.Equal(t, "/certificates/vega-cert.jpg", c.Certifications[4].ImagePath)
	require.Len(t, c.Projects, 2)
	assert.Equal(t, "agriculture", c.Projects[0].ID)
	assert.Empty(t, c.Projects[0].GithubURL)
	assert.Empty(t, c.Projects[1].ReportURL)
	assert.Len(t, c.Internships, 3)
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		issuer string
		want   string
	}{
		{"WebGeon Solutions", "WebGeon-Solutions-certificate.jpg"},
		{"IBM through  Coursera", "IBM-through-Coursera-certificate.jpg"},
		{"Techmaghi", "Techmaghi-certificate.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.issuer, func(t *testing.T) {
			assert.Equal(t, tt.want, Certification{Issuer: tt.issuer}.DownloadName())
		})
	}
}

func TestResumeFileFallsBackToStoredName(t *testing.T) {
	assert.Equal(t, "resume.pdf", Profile{Resume: "/pdf/resume.pdf"}.ResumeFile())
	assert.Equal(t, "CV.pdf", Profile{Resume: "/pdf/resume.pdf", ResumeName: "CV.pdf"}.ResumeFile())
}

func TestParseRejectsBrokenContent(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{
			name: "no certifications",
			doc:  "projects: []\n",
			msg:  "at least one certification",
		},
		{
			name: "certification without image",
			doc:  "certifications:\n  - title: A\n",
			msg:  "has no image",
		},
		{
			name: "duplicate project",
			doc:  "certifications:\n  - {title: A, image: /a.jpg}\nprojects:\n  - {id: x}\n  - {id: x}\n",
			msg:  "duplicate project id",
		},
		{
			name: "project without id",
			doc:  "certifications:\n  - {title: A, image: /a.jpg}\nprojects:\n  - {title: P}\n",
			msg:  "has no id",
		},
		{
			name: "malformed yaml",
			doc:  "certifications: [",
			msg:  "failed to parse content",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
