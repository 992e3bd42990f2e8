package models

type ApplicationStatus string

const (
	StatusSaved     ApplicationStatus = "SAVED"
	StatusApplied   ApplicationStatus = "APPLIED"
	StatusInterview ApplicationStatus = "INTERVIEW"
	StatusOffer     ApplicationStatus = "OFFER"
	StatusRejected  ApplicationStatus = "REJECTED"
	StatusArchived  ApplicationStatus = "ARCHIVED"
)

// Statuses is the Kanban column order.
var Statuses = []ApplicationStatus{
	StatusSaved,
	StatusApplied,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusArchived,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Submitted is true once the application has actually been sent.
func (s ApplicationStatus) Submitted() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// Responded is true when the company answered in any way.
func (s ApplicationStatus) Responded() bool {
	switch s {
	case StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// Active covers applications still waiting on a decision.
func (s ApplicationStatus) Active() bool {
	return s == StatusApplied || s == StatusInterview
}

// Closed statuses no longer produce next steps.
func (s ApplicationStatus) Closed() bool {
	return s == StatusRejected || s == StatusArchived
}

type ApplicationSource string

const (
	SourceLinkedIn       ApplicationSource = "LINKEDIN"
	SourceIndeed         ApplicationSource = "INDEED"
	SourceReferral       ApplicationSource = "REFERRAL"
	SourceCompanyWebsite ApplicationSource = "COMPANY_WEBSITE"
	SourceOther          ApplicationSource = "OTHER"
)

var Sources = []ApplicationSource{
	SourceLinkedIn,
	SourceIndeed,
	SourceReferral,
	SourceCompanyWebsite,
	SourceOther,
}

func (s ApplicationSource) Valid() bool {
	for _, v := range Sources {
		if s == v {
			return true
		}
	}
	return false
}
