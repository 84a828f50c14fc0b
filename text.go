package main

var (
	ContactSuccess = `Thank you! Your message has been sent successfully. I'll get back to you soon.`

	ContactError = `Oops! Something went wrong. Please try again or contact me directly via email/phone.`

	ContactIntro = `Have a project in mind or want to discuss potential opportunities? Feel free to reach out!`

	CertificationsIntro = `Validated skills and professional development achievements`

	CertificationVerification = `This certification can be verified through the issuing organization's official records.`

	ProjectsIntro = `Academic research and professional development work`

	NavItems = []string{"Home", "About", "Experience", "Certifications", "Projects", "Contact"}
)
