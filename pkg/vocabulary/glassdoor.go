package vocabulary

import "glassdoor-search/pkg/entity"

// Core vocabulary keys the Glassdoor keys map onto
const (
	CoreOrganizationIndustry = "organization.industry"
	CoreOrganizationWebsite  = "organization.website"
	CoreUserJobTitle         = "user.jobTitle"
	CoreUserOrganization     = "user.organization"
)

// OrganizationVocabulary holds the keys of the Glassdoor organization vocabulary
type OrganizationVocabulary struct {
	*Vocabulary

	SquareLogo   string
	SectorName   string
	SectorID     string
	IsEEP        string
	IndustryName string
	IndustryID   string
	Industry     string
	Website      string

	OverallRating                 string
	RatingDescription             string
	RecommendToFriendRating       string
	CultureAndValuesRating        string
	CompensationAndBenefitsRating string
	CareerOpportunitiesRating     string
	WorkLifeBalanceRating         string
	SeniorLeadershipRating        string
	CeoPctApprove                 string
	CeoPctDisapprove              string
	CeoNumberOfRatings            string
	NumberOfRatings               string

	FeaturedReviewID             string
	FeaturedReviewHeadline       string
	FeaturedReviewReviewDateTime string
	FeaturedReviewOverall        string
	FeaturedReviewOverallNumeric string
	FeaturedReviewLocation       string
	FeaturedReviewJobTitle       string
	FeaturedReviewJobTitleFromDB string
	FeaturedReviewCurrentJob     string
	FeaturedReviewPros           string
	FeaturedReviewCons           string
	FeaturedReviewAttributionURL string
}

// PersonVocabulary holds the keys of the Glassdoor person (CEO) vocabulary
type PersonVocabulary struct {
	*Vocabulary

	NumberOfRatings  string
	PctApprove       string
	PctDisapprove    string
	Title            string
	OrganizationName string
	ImageSrc         string
}

var (
	Organization = newOrganizationVocabulary()
	Person       = newPersonVocabulary()
)

func newOrganizationVocabulary() *OrganizationVocabulary {
	v := &OrganizationVocabulary{Vocabulary: New("GlassDoor Organization", "glassDoor.organization", entity.Organization)}

	const metadata = "Metadata"
	v.SquareLogo = v.Add(metadata, "squareLogo", WithType(URI), WithVisibility(Hidden))
	v.SectorName = v.Add(metadata, "sectorName")
	v.SectorID = v.Add(metadata, "sectorId", WithType(Number), WithVisibility(Hidden))
	v.IsEEP = v.Add(metadata, "isEEP", WithType(Boolean), WithVisibility(Hidden))
	v.IndustryName = v.Add(metadata, "industryName")
	v.IndustryID = v.Add(metadata, "industryId", WithType(Number), WithVisibility(Hidden))
	v.Industry = v.Add(metadata, "industry")
	v.Website = v.Add(metadata, "website", WithType(URI))

	const ratings = "Ratings"
	v.OverallRating = v.Add(ratings, "ratings.overallRating", WithType(Number), WithDisplayName("Overall Rating"))
	v.RatingDescription = v.Add(ratings, "ratings.ratingDescription", WithDisplayName("Rating Description"))
	v.RecommendToFriendRating = v.Add(ratings, "ratings.recommendToFriendRating", WithType(Number), WithDisplayName("Recommend To Friend Rating"))
	v.CultureAndValuesRating = v.Add(ratings, "ratings.cultureAndValuesRating", WithType(Number), WithDisplayName("Culture and Values Rating"))
	v.CompensationAndBenefitsRating = v.Add(ratings, "ratings.compensationAndBenefitsRating", WithType(Number), WithDisplayName("Compensation and Benefits Rating"))
	v.CareerOpportunitiesRating = v.Add(ratings, "ratings.careerOpportunitiesRating", WithType(Number), WithDisplayName("Career Opportunities Rating"))
	v.WorkLifeBalanceRating = v.Add(ratings, "ratings.workLifeBalanceRating", WithType(Number), WithDisplayName("Worklife Balance Rating"))
	v.SeniorLeadershipRating = v.Add(ratings, "ratings.seniorLeadershipRating", WithType(Number), WithDisplayName("Senior Leadership Rating"))
	v.CeoPctApprove = v.Add(ratings, "ratings.ceo.pctApprove", WithType(Number), WithDisplayName("CEO Approval %"))
	v.CeoPctDisapprove = v.Add(ratings, "ratings.ceo.pctDisapprove", WithType(Number), WithDisplayName("CEO Disapproval %"))
	v.CeoNumberOfRatings = v.Add(ratings, "ratings.ceo.numberOfRatings", WithType(Number), WithDisplayName("Number of CEO Ratings"))
	v.NumberOfRatings = v.Add(ratings, "ratings.numberOfRatings", WithType(Number), WithDisplayName("Number of Ratings"))

	const review = "Featured Review"
	v.FeaturedReviewID = v.Add(review, "featuredReview.id", WithType(Number), WithVisibility(Hidden))
	v.FeaturedReviewHeadline = v.Add(review, "featuredReview.headline")
	v.FeaturedReviewReviewDateTime = v.Add(review, "featuredReview.reviewDateTime", WithType(DateTime))
	v.FeaturedReviewOverall = v.Add(review, "featuredReview.overall", WithType(Number))
	v.FeaturedReviewOverallNumeric = v.Add(review, "featuredReview.overallNumeric", WithType(Number), WithVisibility(Hidden))
	v.FeaturedReviewLocation = v.Add(review, "featuredReview.location", WithType(GeographyLocation))
	v.FeaturedReviewJobTitle = v.Add(review, "featuredReview.jobTitle")
	v.FeaturedReviewJobTitleFromDB = v.Add(review, "featuredReview.jobTitleFromDb", WithVisibility(Hidden))
	v.FeaturedReviewCurrentJob = v.Add(review, "featuredReview.currentJob", WithType(Boolean))
	v.FeaturedReviewPros = v.Add(review, "featuredReview.pros")
	v.FeaturedReviewCons = v.Add(review, "featuredReview.cons")
	v.FeaturedReviewAttributionURL = v.Add(review, "featuredReview.attributionURL", WithType(URI))

	v.AddMapping(v.IndustryName, CoreOrganizationIndustry)
	v.AddMapping(v.Website, CoreOrganizationWebsite)

	return v
}

func newPersonVocabulary() *PersonVocabulary {
	v := &PersonVocabulary{Vocabulary: New("GlassDoor Person", "glassDoor.Person", entity.Person)}

	v.NumberOfRatings = v.Add("", "numberOfRatings", WithType(Number))
	v.PctApprove = v.Add("", "pctApprove", WithType(Number))
	v.PctDisapprove = v.Add("", "pctDisapprove", WithType(Number))
	v.Title = v.Add("", "title")
	v.OrganizationName = v.Add("", "organizationName")
	v.ImageSrc = v.Add("", "imageSrc", WithType(URI), WithVisibility(Hidden))

	v.AddMapping(v.Title, CoreUserJobTitle)
	v.AddMapping(v.OrganizationName, CoreUserOrganization)

	return v
}
