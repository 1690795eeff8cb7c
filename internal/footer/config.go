package footer

import "time"

// Config holds what the footer must contain.
type Config struct {
	// Brand is the exact alt text of the logo image.
	Brand string `yaml:"brand"`

	// ContactLabel is the exact text of the contact link.
	ContactLabel string `yaml:"contact_label"`

	// SecurePrefix is what the contact link href must start with.
	SecurePrefix string `yaml:"secure_prefix"`

	// MailPrefix marks an email link.
	MailPrefix string `yaml:"mail_prefix"`

	// MailFragment must appear in the email link href.
	MailFragment string `yaml:"mail_fragment"`

	// SocialsSelector is the container holding social network icons.
	SocialsSelector string `yaml:"socials_selector"`

	// CopyrightGlyph must appear in the copyright notice.
	CopyrightGlyph string `yaml:"copyright_glyph"`

	// WaitTimeout bounds how long the locator waits for a visible footer.
	WaitTimeout time.Duration `yaml:"wait_timeout"`
}

// DefaultConfig returns the expectations for only.digital.
func DefaultConfig() Config {
	return Config{
		Brand:           "Only",
		ContactLabel:    "Контакты",
		SecurePrefix:    "https",
		MailPrefix:      "mailto:",
		MailFragment:    "info@",
		SocialsSelector: ".socials",
		CopyrightGlyph:  "©",
		WaitTimeout:     10 * time.Second,
	}
}
