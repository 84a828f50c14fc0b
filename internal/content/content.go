// Package content holds the compiled-in portfolio content.
package content

import (
	_ "embed"
	"path"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var document []byte

// Profile is the owner's identity and contact details.
type Profile struct {
	Name         string   `yaml:"name"`
	FooterName   string   `yaml:"footer_name"`
	Roles        []string `yaml:"roles"`
	Tagline      string   `yaml:"tagline"`
	Email        string   `yaml:"email"`
	Phone        string   `yaml:"phone"`
	PhoneDisplay string   `yaml:"phone_display"`
	PhoneIntl    string   `yaml:"phone_intl"`
	LinkedIn     string   `yaml:"linkedin"`
	Photo        string   `yaml:"photo"`
	Resume       string   `yaml:"resume"`
	ResumeName   string   `yaml:"resume_name"`
	SceneURL     string   `yaml:"scene_url"`
	Availability string   `yaml:"availability"`
}

// ResumeFile is the file name the resume is saved under. It falls back
// to the name of the stored file.
func (p Profile) ResumeFile() string {
	if p.ResumeName != "" {
		return p.ResumeName
	}
	return path.Base(p.Resume)
}

// Education is one entry of the education list.
type Education struct {
	Institution string `yaml:"institution"`
	Course      string `yaml:"course"`
	Detail      string `yaml:"detail"`
}

// Experience is one job on the timeline.
type Experience struct {
	Role    string   `yaml:"role"`
	Company string   `yaml:"company"`
	URL     string   `yaml:"url"`
	Period  string   `yaml:"period"`
	Address []string `yaml:"address"`
	Bullets []string `yaml:"bullets"`
}

// Certification is a certificate record. Its position in Content.Certifications
// is its display and rotation order.
type Certification struct {
	Title       string   `yaml:"title"`
	Issuer      string   `yaml:"issuer"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Skills      []string `yaml:"skills"`
	ImagePath   string   `yaml:"image"`
}

// DownloadName is the attachment name offered for the certificate image.
func (c Certification) DownloadName() string {
	return strings.Join(strings.Fields(c.Issuer), "-") + "-certificate.jpg"
}

// Project is an academic project with a detail modal.
type Project struct {
	ID               string   `yaml:"id"`
	Title            string   `yaml:"title"`
	ShortDescription string   `yaml:"short_description"`
	Description      string   `yaml:"description"`
	Features         []string `yaml:"features"`
	GithubURL        string   `yaml:"github,omitempty"`
	ReportURL        string   `yaml:"report,omitempty"`
	Photos           []string `yaml:"photos,omitempty"`
	Enquiry          string   `yaml:"enquiry,omitempty"`
}

// Internship is an internship project card.
type Internship struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
}

// Content is the whole page.
type Content struct {
	Profile        Profile         `yaml:"profile"`
	About          []string        `yaml:"about"`
	Skills         []string        `yaml:"skills"`
	Education      []Education     `yaml:"education"`
	Experience     []Experience    `yaml:"experience"`
	Certifications []Certification `yaml:"certifications"`
	Projects       []Project       `yaml:"projects"`
	Internships    []Internship    `yaml:"internships"`
}

// Load parses the embedded content document.
func Load() (*Content, error) {
	return Parse(document)
}

// Parse decodes and validates a content document.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "failed to parse content")
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid content")
	}
	return &c, nil
}

// Validate checks the invariants the widgets rely on.
func (c *Content) Validate() error {
	if len(c.Certifications) == 0 {
		return errors.New("at least one certification is required")
	}
	for i, cert := range c.Certifications {
		if cert.ImagePath == "" {
			return errors.Errorf("certification %d (%s) has no image", i, cert.Title)
		}
	}
	seen := make(map[string]bool, len(c.Projects))
	for i, p := range c.Projects {
		if p.ID == "" {
			return errors.Errorf("project %d (%s) has no id", i, p.Title)
		}
		if seen[p.ID] {
			return errors.Errorf("duplicate project id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
