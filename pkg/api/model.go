package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the top-level body returned by the Glassdoor API
type Envelope struct {
	Success    bool      `json:"success"`
	Status     string    `json:"status"`
	JSessionID string    `json:"jsessionid"`
	Response   *Response `json:"response"`
}

// Response is the employer search page
type Response struct {
	AttributionURL     string     `json:"attributionURL"`
	CurrentPageNumber  int        `json:"currentPageNumber"`
	TotalNumberOfPages int        `json:"totalNumberOfPages"`
	TotalRecordCount   int        `json:"totalRecordCount"`
	Employers          []Employer `json:"employers"`
}

// Employer is a single employer record
type Employer struct {
	ID                            int             `json:"id"`
	Name                          string          `json:"name"`
	Website                       string          `json:"website"`
	IsEEP                         *bool           `json:"isEEP"`
	ExactMatch                    *bool           `json:"exactMatch"`
	Industry                      string          `json:"industry"`
	NumberOfRatings               Number          `json:"numberOfRatings"`
	SquareLogo                    string          `json:"squareLogo"`
	OverallRating                 Number          `json:"overallRating"`
	RatingDescription             string          `json:"ratingDescription"`
	CultureAndValuesRating        Number          `json:"cultureAndValuesRating"`
	SeniorLeadershipRating        Number          `json:"seniorLeadershipRating"`
	CompensationAndBenefitsRating Number          `json:"compensationAndBenefitsRating"`
	CareerOpportunitiesRating     Number          `json:"careerOpportunitiesRating"`
	WorkLifeBalanceRating         Number          `json:"workLifeBalanceRating"`
	RecommendToFriendRating       Number          `json:"recommendToFriendRating"`
	SectorID                      Number          `json:"sectorId"`
	SectorName                    string          `json:"sectorName"`
	IndustryID                    Number          `json:"industryId"`
	IndustryName                  string          `json:"industryName"`
	FeaturedReview                *FeaturedReview `json:"featuredReview"`
	Ceo                           *Ceo            `json:"ceo"`
}

// Ceo is the employer's chief executive as rated by reviewers
type Ceo struct {
	Name            string    `json:"name"`
	Title           string    `json:"title"`
	NumberOfRatings Number    `json:"numberOfRatings"`
	PctApprove      Number    `json:"pctApprove"`
	PctDisapprove   Number    `json:"pctDisapprove"`
	Image           *CeoImage `json:"image"`
}

// CeoImage is the CEO portrait
type CeoImage struct {
	Src    string `json:"src"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// FeaturedReview is the review Glassdoor highlights for an employer
type FeaturedReview struct {
	ID             Number `json:"id"`
	AttributionURL string `json:"attributionURL"`
	CurrentJob     *bool  `json:"currentJob"`
	ReviewDateTime string `json:"reviewDateTime"`
	JobTitle       string `json:"jobTitle"`
	Location       string `json:"location"`
	JobTitleFromDB string `json:"jobTitleFromDb"`
	Headline       string `json:"headline"`
	Pros           string `json:"pros"`
	Cons           string `json:"cons"`
	Overall        Number `json:"overall"`
	OverallNumeric Number `json:"overallNumeric"`
}

// Number is a numeric field the API sends either as a JSON number or as a
// string. The decimal text is kept as received; Valid is false when the field
// was absent or null.
type Number struct {
	Text  string
	Valid bool
}

// NumberOf returns a valid Number holding the given text
func NumberOf(text string) Number {
	return Number{Text: text, Valid: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid numeric string %s: %w", data, err)
		}
		*n = Number{Text: s, Valid: true}
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	*n = Number{Text: num.String(), Valid: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Text)
}

func (n Number) String() string {
	return n.Text
}
