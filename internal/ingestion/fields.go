// Package ingestion reads collector batch files and reconciles their
// varying field names into raw records ready for normalization.
package ingestion

import "strings"

// Canonical field names shared by the CSV and JSON readers.
const (
	fieldTitle          = "title"
	fieldCompany        = "company"
	fieldLocation       = "location"
	fieldSalary         = "salary"
	fieldEmploymentType = "employment_type"
	fieldDescription    = "description"
	fieldPostedDate     = "posted_date"
	fieldSource         = "source"
)

// fieldAliases maps the column and key names observed across collectors
// to canonical fields. German aliases come from the domestic job boards.
var fieldAliases = map[string]string{
	"title":              fieldTitle,
	"job_title":          fieldTitle,
	"jobtitle":           fieldTitle,
	"position":           fieldTitle,
	"role":               fieldTitle,
	"stellenbezeichnung": fieldTitle,

	"company":      fieldCompany,
	"company_name": fieldCompany,
	"employer":     fieldCompany,
	"arbeitgeber":  fieldCompany,
	"firma":        fieldCompany,

	"location":  fieldLocation,
	"city":      fieldLocation,
	"ort":       fieldLocation,
	"standort":  fieldLocation,
	"arbeitsort": fieldLocation,

	"salary":       fieldSalary,
	"pay":          fieldSalary,
	"compensation": fieldSalary,
	"salary_range": fieldSalary,
	"gehalt":       fieldSalary,

	"employment_type": fieldEmploymentType,
	"job_type":        fieldEmploymentType,
	"contract_type":   fieldEmploymentType,
	"anstellungsart":  fieldEmploymentType,
	"vertragsart":     fieldEmploymentType,

	"description":     fieldDescription,
	"job_description": fieldDescription,
	"text":            fieldDescription,
	"beschreibung":    fieldDescription,

	"posted_date": fieldPostedDate,
	"date_posted": fieldPostedDate,
	"posted":      fieldPostedDate,
	"date":        fieldPostedDate,
	"datum":       fieldPostedDate,
	"published":   fieldPostedDate,

	"source":   fieldSource,
	"portal":   fieldSource,
	"jobboard": fieldSource,
}

// canonicalField resolves a raw column or key name to its canonical
// field, or "" when the name is unknown. Unknown columns are ignored
// rather than rejected so collectors may carry extra metadata.
func canonicalField(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return fieldAliases[key]
}
