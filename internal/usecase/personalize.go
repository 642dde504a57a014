package usecase

import (
	"strings"

	"github.com/xavierca1/linkreach/internal/entity"
)

const (
	fallbackCompany  = "your company"
	fallbackIndustry = "your industry"
)

// Personalize substitutes prospect attributes into a message body. Only
// {firstName}, {company} and {industry} are recognized; anything else passes
// through verbatim. All occurrences are replaced.
func Personalize(template string, p *entity.Prospect) string {
	company := p.Company
	if company == "" {
		company = fallbackCompany
	}

	industry := p.Industry
	if industry == "" {
		industry = fallbackIndustry
	}

	msg := strings.ReplaceAll(template, "{firstName}", p.FirstName)
	msg = strings.ReplaceAll(msg, "{company}", company)
	msg = strings.ReplaceAll(msg, "{industry}", industry)
	return msg
}
