package domain

import "github.com/shopspring/decimal"

type Tutor struct {
	ID           string          `json:"id"            yaml:"id"`
	Name         string          `json:"name"          yaml:"name"`
	Subjects     []string        `json:"subjects"      yaml:"subjects"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"   yaml:"hourly_rate"`
	Rating       float64         `json:"rating"        yaml:"rating"`
	Availability string          `json:"availability"  yaml:"availability"`
	Bio          string          `json:"bio,omitempty" yaml:"bio"`
}
