package footer

// CheckName identifies one structural check.
type CheckName string

const (
	CheckNameLogo        CheckName = "logo"
	CheckNameContact     CheckName = "contact_link"
	CheckNameEmail       CheckName = "email"
	CheckNameSocialIcons CheckName = "social_icons"
	CheckNameCopyright   CheckName = "copyright"
)

// CheckResult is the outcome of one check against one footer.
type CheckResult struct {
	Name   CheckName `json:"name"`
	Passed bool      `json:"passed"`
	Detail string    `json:"detail,omitempty"`
}

// Report is the ordered set of check results for a single URL.
// Checks is empty when FooterFound is false.
type Report struct {
	URL          string        `json:"url"`
	FooterFound  bool          `json:"footer_found"`
	FooterDetail string        `json:"footer_detail,omitempty"`
	Checks       []CheckResult `json:"checks,omitempty"`
}

// Passed reports whether the footer was found and every check passed.
func (r *Report) Passed() bool {
	if r == nil || !r.FooterFound {
		return false
	}
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// FirstFailure returns the first failing check in order.
func (r *Report) FirstFailure() (CheckResult, bool) {
	if r == nil {
		return CheckResult{}, false
	}
	for _, c := range r.Checks {
		if !c.Passed {
			return c, true
		}
	}
	return CheckResult{}, false
}
