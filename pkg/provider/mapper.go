package provider

import (
	"context"
	"strconv"

	"glassdoor-search/pkg/api"
	"glassdoor-search/pkg/entity"
	"glassdoor-search/pkg/vocabulary"
)

// BuildClues maps an employer to its clues: the CEO person clue when the
// employer has a named CEO, followed by the organization clue.
func (p *Provider) BuildClues(ctx context.Context, result Result) []*entity.Clue {
	employer := result.Employer
	clues := make([]*entity.Clue, 0, 2)

	orgClue := entity.NewClue(organizationCode(employer))
	populateOrganization(&orgClue.Data, employer)
	orgClue.PreviewImage = p.previewImage(ctx, employer.SquareLogo)

	if employer.Ceo != nil && employer.Ceo.Name != "" {
		personClue := entity.NewClue(personCode(employer))
		populatePerson(&personClue.Data, employer)
		if employer.Ceo.Image != nil {
			personClue.PreviewImage = p.previewImage(ctx, employer.Ceo.Image.Src)
		}
		clues = append(clues, personClue)
	}

	return append(clues, orgClue)
}

// PrimaryEntityMetadata returns the organization metadata of a result
func (p *Provider) PrimaryEntityMetadata(result Result) *entity.Metadata {
	metadata := entity.NewMetadata()
	populateOrganization(metadata, result.Employer)
	return metadata
}

// PrimaryEntityPreviewImage returns the employer logo, or nil when there is
// none or it could not be downloaded
func (p *Provider) PrimaryEntityPreviewImage(ctx context.Context, result Result) *entity.PreviewImage {
	return p.previewImage(ctx, result.Employer.SquareLogo)
}

func (p *Provider) previewImage(ctx context.Context, url string) *entity.PreviewImage {
	if url == "" || p.images == nil {
		return nil
	}

	image, err := p.images.Fetch(ctx, url)
	if err != nil {
		p.log.WithError(err).WithField("url", url).Debug("Preview image not available")
		return nil
	}
	return image
}

func organizationCode(employer api.Employer) entity.EntityCode {
	return entity.NewEntityCode(entity.Organization, Origin, strconv.Itoa(employer.ID))
}

func personCode(employer api.Employer) entity.EntityCode {
	return entity.NewEntityCode(entity.Person, Origin, strconv.Itoa(employer.ID)+"|"+employer.Ceo.Name)
}

func populateOrganization(metadata *entity.Metadata, employer api.Employer) {
	code := organizationCode(employer)

	metadata.EntityType = entity.Organization
	metadata.Name = employer.Name
	metadata.OriginEntityCode = code

	if employer.Website != "" {
		metadata.AddCode(entity.NewEntityCode(entity.Organization, WebsiteOrigin, employer.Website))
	}
	metadata.AddCode(code)

	if metadata.Properties == nil {
		metadata.Properties = make(map[string]string)
	}
	props := properties(metadata.Properties)
	vocab := vocabulary.Organization

	props.setNumber(vocab.CareerOpportunitiesRating, employer.CareerOpportunitiesRating)
	props.setNumber(vocab.CompensationAndBenefitsRating, employer.CompensationAndBenefitsRating)
	props.setNumber(vocab.CultureAndValuesRating, employer.CultureAndValuesRating)
	props.set(vocab.Industry, employer.Industry)
	props.setNumber(vocab.IndustryID, employer.IndustryID)
	props.set(vocab.IndustryName, employer.IndustryName)
	props.setBool(vocab.IsEEP, employer.IsEEP)
	props.setNumber(vocab.NumberOfRatings, employer.NumberOfRatings)
	props.setNumber(vocab.OverallRating, employer.OverallRating)
	props.set(vocab.RatingDescription, employer.RatingDescription)
	props.setNumber(vocab.RecommendToFriendRating, employer.RecommendToFriendRating)
	props.setNumber(vocab.SectorID, employer.SectorID)
	props.set(vocab.SectorName, employer.SectorName)
	props.setNumber(vocab.SeniorLeadershipRating, employer.SeniorLeadershipRating)
	props.set(vocab.SquareLogo, employer.SquareLogo)
	props.setNumber(vocab.WorkLifeBalanceRating, employer.WorkLifeBalanceRating)
	props.set(vocab.Website, employer.Website)

	if ceo := employer.Ceo; ceo != nil {
		props.setNumber(vocab.CeoPctApprove, ceo.PctApprove)
		props.setNumber(vocab.CeoPctDisapprove, ceo.PctDisapprove)
		props.setNumber(vocab.CeoNumberOfRatings, ceo.NumberOfRatings)
	}

	if review := employer.FeaturedReview; review != nil {
		props.set(vocab.FeaturedReviewAttributionURL, review.AttributionURL)
		props.set(vocab.FeaturedReviewCons, review.Cons)
		props.setBool(vocab.FeaturedReviewCurrentJob, review.CurrentJob)
		props.set(vocab.FeaturedReviewHeadline, review.Headline)
		props.setNumber(vocab.FeaturedReviewID, review.ID)
		props.set(vocab.FeaturedReviewJobTitle, review.JobTitle)
		props.set(vocab.FeaturedReviewJobTitleFromDB, review.JobTitleFromDB)
		props.set(vocab.FeaturedReviewLocation, review.Location)
		props.setNumber(vocab.FeaturedReviewOverall, review.Overall)
		props.setNumber(vocab.FeaturedReviewOverallNumeric, review.OverallNumeric)
		props.set(vocab.FeaturedReviewPros, review.Pros)
		props.set(vocab.FeaturedReviewReviewDateTime, review.ReviewDateTime)
	}
}

func populatePerson(metadata *entity.Metadata, employer api.Employer) {
	code := personCode(employer)
	ceo := employer.Ceo

	metadata.EntityType = entity.Person
	metadata.Name = ceo.Name
	metadata.OriginEntityCode = code
	metadata.AddCode(code)

	if metadata.Properties == nil {
		metadata.Properties = make(map[string]string)
	}
	props := properties(metadata.Properties)
	vocab := vocabulary.Person

	props.setNumber(vocab.NumberOfRatings, ceo.NumberOfRatings)
	props.setNumber(vocab.PctApprove, ceo.PctApprove)
	props.setNumber(vocab.PctDisapprove, ceo.PctDisapprove)
	props.set(vocab.Title, ceo.Title)
	props.set(vocab.OrganizationName, employer.Name)
	if ceo.Image != nil {
		props.set(vocab.ImageSrc, ceo.Image.Src)
	}
}

// properties writes vocabulary values; absent numbers and booleans are
// omitted, strings are copied as they are
type properties map[string]string

func (p properties) set(key, value string) {
	p[key] = value
}

func (p properties) setNumber(key string, value api.Number) {
	if value.Valid {
		p[key] = value.Text
	}
}

func (p properties) setBool(key string, value *bool) {
	if value != nil {
		p[key] = strconv.FormatBool(*value)
	}
}
