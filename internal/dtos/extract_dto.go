package dtos

// ExtractionRequest carries a job posting page for the LLM to read.
type ExtractionRequest struct {
	RawHTML string `json:"rawHtml" binding:"required"`
	URL     string `json:"url"`
}

// ApplicationDraft is what the extractor could recover from a posting. It is
// shaped so a client can post it back as a CreateApplicationRequest.
type ApplicationDraft struct {
	Company        string `json:"company"`
	Position       string `json:"position"`
	CompanyWebsite string `json:"companyWebsite,omitempty"`
	JobURL         string `json:"jobUrl,omitempty"`
	Location       string `json:"location,omitempty"`
	SalaryMin      *int   `json:"salaryMin,omitempty"`
	SalaryMax      *int   `json:"salaryMax,omitempty"`
	Notes          string `json:"notes,omitempty"`
}
