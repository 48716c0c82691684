package types

// RawRecord is one collector row before normalization. Field names and
// formats vary per collector; the ingestion layer reconciles known
// aliases into this shape and the normalizer produces a JobRecord.
type RawRecord struct {
	Title          string `json:"title,omitempty"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
	Salary         string `json:"salary,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	Description    string `json:"description,omitempty"`
	PostedDate     string `json:"posted_date,omitempty"`
	Source         string `json:"source,omitempty"`
}

// Empty reports whether every field of the raw record is blank.
func (r *RawRecord) Empty() bool {
	return r.Title == "" && r.Company == "" && r.Location == "" &&
		r.Salary == "" && r.EmploymentType == "" && r.Description == "" &&
		r.PostedDate == "" && r.Source == ""
}
