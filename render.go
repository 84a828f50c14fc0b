package main

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/Sreeharips1/portfolio/internal/contact"
	"github.com/Sreeharips1/portfolio/internal/content"
	"github.com/Sreeharips1/portfolio/internal/reveal"
	"github.com/Sreeharips1/portfolio/internal/typewriter"
	"github.com/Sreeharips1/portfolio/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"tel": func(phone string) template.URL {
			return template.URL(contact.TelURI(phone))
		},
		"whatsapp": contact.WhatsAppURI,
		"inc":      func(i int) int { return i + 1 },
		"lower":    strings.ToLower,
		"last":     func(i int, list []string) bool { return i == len(list)-1 },
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// page is the data every template renders from.
type page struct {
	ViewID  string
	Profile content.Profile
	Content *content.Content
	Year    int
	Nav     []string
	Text    uiText

	SceneLoaded bool
	Tagline     typewriter.Frame
	Hero        reveal.Frames

	AboutRevealed bool
	About         reveal.Frames
	Skills        reveal.Frames

	ExperienceRevealed bool
	ExperienceHeader   reveal.Frames
	Experience         reveal.Frames

	CertificationsRevealed bool
	CertificationsFrames   reveal.Frames
	Certifications         []content.Certification
	ActiveCert             int
	Active                 content.Certification

	Projects    []content.Project
	Academic    reveal.Frames
	Internships reveal.Frames
	Modal       *content.Project

	Contact contactView
}

type uiText struct {
	ContactIntro              string
	CertificationsIntro       string
	CertificationVerification string
	ProjectsIntro             string
}

type contactView struct {
	Form    contact.Form
	Status  string
	Message string
}

func (s *server) page(v *view.View) (*page, error) {
	certs, err := s.catalog.Certifications()
	if err != nil {
		return nil, err
	}
	projects, err := s.catalog.Projects()
	if err != nil {
		return nil, err
	}
	active := v.Carousel.Active()

	p := &page{
		ViewID:  v.ID,
		Profile: s.content.Profile,
		Content: s.content,
		Year:    time.Now().Year(),
		Nav:     NavItems,
		Text: uiText{
			ContactIntro:              ContactIntro,
			CertificationsIntro:       CertificationsIntro,
			CertificationVerification: CertificationVerification,
			ProjectsIntro:             ProjectsIntro,
		},

		SceneLoaded: v.IsSceneLoaded(),
		Tagline:     v.Typewriter.Frame(),

		AboutRevealed:          v.Revealed(view.SectionAbout),
		ExperienceRevealed:     v.Revealed(view.SectionExperience),
		CertificationsRevealed: v.Revealed(view.SectionCertifications),

		Certifications: certs,
		ActiveCert:     active,
		Active:         certs[active],
		Projects:       projects,
	}
	p.Hero = heroGroup().Frames(p.SceneLoaded)
	p.About = aboutGroup().Frames(p.AboutRevealed)
	p.Skills = skillsGroup(len(s.content.Skills)).Frames(p.AboutRevealed)
	p.ExperienceHeader = experienceHeaderGroup().Frames(p.ExperienceRevealed)
	p.Experience = experienceGroup(len(s.content.Experience)).Frames(p.ExperienceRevealed)
	p.CertificationsFrames = certificationsGroup().Frames(p.CertificationsRevealed)
	p.Academic = academicGroup(len(projects)).Frames(true)
	p.Internships = internshipGroup(len(s.content.Internships)).Frames(true)

	if id, ok := v.Modal.Active(); ok {
		if project, err := s.catalog.Project(id); err == nil {
			p.Modal = &project
		}
	}

	p.Contact = contactView{Form: v.Contact.Form(), Status: v.Contact.Status().String()}
	switch v.Contact.Status() {
	case contact.StatusSuccess:
		p.Contact.Message = ContactSuccess
	case contact.StatusError:
		p.Contact.Message = ContactError
	}
	return p, nil
}

// panelPage is the page for a certification panel swapped in on its own,
// after a carousel tick or a selection. Once the section has revealed, the
// panel renders at rest so the reveal does not replay on every swap.
func (s *server) panelPage(v *view.View) (*page, error) {
	p, err := s.page(v)
	if err != nil {
		return nil, err
	}
	if p.CertificationsRevealed {
		p.CertificationsFrames = certificationsGroup().Settled()
	}
	return p, nil
}

func (s *server) renderFragment(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
