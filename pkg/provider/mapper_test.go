package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glassdoor-search/pkg/api"
	"glassdoor-search/pkg/entity"
	"glassdoor-search/pkg/vocabulary"
)

type fakeFetcher struct {
	failing map[string]bool
	calls   []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*entity.PreviewImage, error) {
	f.calls = append(f.calls, url)
	if f.failing[url] {
		return nil, errors.New("download failed")
	}
	return &entity.PreviewImage{URL: url, ContentType: "image/png", Data: []byte("png")}, nil
}

func boolPtr(b bool) *bool { return &b }

func result(employer api.Employer) Result {
	return Result{
		Query:    entity.NewQuery(ID, entity.Organization, entity.QueryParameterName, "acme"),
		Employer: employer,
	}
}

func fullEmployer() api.Employer {
	return api.Employer{
		ID:                            42,
		Name:                          "Acme",
		Website:                       "www.acme.com",
		IsEEP:                         boolPtr(true),
		Industry:                      "Manufacturing",
		NumberOfRatings:               api.NumberOf("1500"),
		SquareLogo:                    "https://media.glassdoor.com/acme.png",
		OverallRating:                 api.NumberOf("3.9"),
		RatingDescription:             "Satisfied",
		CultureAndValuesRating:        api.NumberOf("4.0"),
		SeniorLeadershipRating:        api.NumberOf("3.5"),
		CompensationAndBenefitsRating: api.NumberOf("3.7"),
		CareerOpportunitiesRating:     api.NumberOf("3.6"),
		WorkLifeBalanceRating:         api.NumberOf("3.8"),
		RecommendToFriendRating:       api.NumberOf("72"),
		SectorID:                      api.NumberOf("10006"),
		SectorName:                    "Manufacturing",
		IndustryID:                    api.NumberOf("200060"),
		IndustryName:                  "Industrial Manufacturing",
		Ceo: &api.Ceo{
			Name:            "Jane Doe",
			Title:           "CEO",
			NumberOfRatings: api.NumberOf("800"),
			PctApprove:      api.NumberOf("91"),
			PctDisapprove:   api.NumberOf("9"),
			Image:           &api.CeoImage{Src: "https://media.glassdoor.com/jane.png", Height: 200, Width: 200},
		},
		FeaturedReview: &api.FeaturedReview{
			ID:             api.NumberOf("123456"),
			AttributionURL: "https://www.glassdoor.com/Reviews/acme-RVW123456.htm",
			CurrentJob:     boolPtr(false),
			ReviewDateTime: "2016-03-01 10:00:00.0",
			JobTitle:       "Engineer",
			Location:       "Copenhagen",
			JobTitleFromDB: "Engineer",
			Headline:       "Great place",
			Pros:           "People",
			Cons:           "Parking",
			Overall:        api.NumberOf("5"),
			OverallNumeric: api.NumberOf("5"),
		},
	}
}

func TestBuildClues_OrganizationOnly(t *testing.T) {
	p := New(&fakeSearcher{})

	clues := p.BuildClues(context.Background(), result(api.Employer{ID: 42, Name: "Acme"}))
	require.Len(t, clues, 1)

	clue := clues[0]
	expected := entity.NewEntityCode(entity.Organization, Origin, "42")
	assert.Equal(t, expected, clue.Code)
	assert.Equal(t, "/Organization#CluedIn(glassDoor):42", clue.Code.String())
	assert.Equal(t, entity.Organization, clue.Data.EntityType)
	assert.Equal(t, "Acme", clue.Data.Name)
	assert.Equal(t, expected, clue.Data.OriginEntityCode)
	assert.Equal(t, []entity.EntityCode{expected}, clue.Data.Codes)
	assert.Nil(t, clue.PreviewImage)
}

func TestBuildClues_WithCeo(t *testing.T) {
	p := New(&fakeSearcher{})

	clues := p.BuildClues(context.Background(), result(api.Employer{
		ID:   42,
		Name: "Acme",
		Ceo:  &api.Ceo{Name: "Jane Doe", Title: "CEO"},
	}))
	require.Len(t, clues, 2)

	person, org := clues[0], clues[1]
	assert.Equal(t, entity.NewEntityCode(entity.Person, Origin, "42|Jane Doe"), person.Code)
	assert.Equal(t, entity.Person, person.Data.EntityType)
	assert.Equal(t, "Jane Doe", person.Data.Name)
	assert.Equal(t, "CEO", person.Data.Properties[vocabulary.Person.Title])
	assert.Equal(t, "Acme", person.Data.Properties[vocabulary.Person.OrganizationName])
	assert.NotContains(t, person.Data.Properties, vocabulary.Person.PctApprove)
	assert.NotContains(t, person.Data.Properties, vocabulary.Person.ImageSrc)

	assert.Equal(t, entity.NewEntityCode(entity.Organization, Origin, "42"), org.Code)
}

func TestBuildClues_CeoWithoutName(t *testing.T) {
	p := New(&fakeSearcher{})

	clues := p.BuildClues(context.Background(), result(api.Employer{
		ID:  42,
		Ceo: &api.Ceo{PctApprove: api.NumberOf("80")},
	}))
	require.Len(t, clues, 1)
	assert.Equal(t, entity.Organization, clues[0].Data.EntityType)
	assert.Equal(t, "80", clues[0].Data.Properties[vocabulary.Organization.CeoPctApprove])
}

func TestBuildClues_WebsiteCode(t *testing.T) {
	p := New(&fakeSearcher{})

	clues := p.BuildClues(context.Background(), result(api.Employer{ID: 42, Name: "Acme", Website: "www.acme.com"}))
	require.Len(t, clues, 1)

	website := entity.NewEntityCode(entity.Organization, WebsiteOrigin, "www.acme.com")
	assert.True(t, clues[0].Data.HasCode(website))
	assert.True(t, clues[0].Data.HasCode(entity.NewEntityCode(entity.Organization, Origin, "42")))
	assert.Len(t, clues[0].Data.Codes, 2)
}

func TestBuildClues_Properties(t *testing.T) {
	p := New(&fakeSearcher{})

	clues := p.BuildClues(context.Background(), result(fullEmployer()))
	require.Len(t, clues, 2)

	org := clues[1].Data.Properties
	v := vocabulary.Organization
	assert.Equal(t, "3.9", org[v.OverallRating])
	assert.Equal(t, "72", org[v.RecommendToFriendRating])
	assert.Equal(t, "true", org[v.IsEEP])
	assert.Equal(t, "200060", org[v.IndustryID])
	assert.Equal(t, "Industrial Manufacturing", org[v.IndustryName])
	assert.Equal(t, "www.acme.com", org[v.Website])
	assert.Equal(t, "91", org[v.CeoPctApprove])
	assert.Equal(t, "9", org[v.CeoPctDisapprove])
	assert.Equal(t, "800", org[v.CeoNumberOfRatings])
	assert.Equal(t, "123456", org[v.FeaturedReviewID])
	assert.Equal(t, "false", org[v.FeaturedReviewCurrentJob])
	assert.Equal(t, "Parking", org[v.FeaturedReviewCons])
	assert.Equal(t, "2016-03-01 10:00:00.0", org[v.FeaturedReviewReviewDateTime])

	person := clues[0].Data.Properties
	assert.Equal(t, "800", person[vocabulary.Person.NumberOfRatings])
	assert.Equal(t, "91", person[vocabulary.Person.PctApprove])
	assert.Equal(t, "https://media.glassdoor.com/jane.png", person[vocabulary.Person.ImageSrc])
}

func TestBuildClues_OmitsAbsentValues(t *testing.T) {
	p := New(&fakeSearcher{})

	employer := fullEmployer()
	employer.RecommendToFriendRating = api.Number{}
	employer.IsEEP = nil
	employer.FeaturedReview = nil
	employer.Ceo = nil
	employer.RatingDescription = ""

	clues := p.BuildClues(context.Background(), result(employer))
	require.Len(t, clues, 1)

	props := clues[0].Data.Properties
	v := vocabulary.Organization
	assert.NotContains(t, props, v.RecommendToFriendRating)
	assert.NotContains(t, props, v.IsEEP)
	assert.NotContains(t, props, v.CeoPctApprove)
	assert.NotContains(t, props, v.FeaturedReviewHeadline)

	// strings are copied as they are, empty included
	value, ok := props[v.RatingDescription]
	assert.True(t, ok)
	assert.Equal(t, "", value)
}

func TestBuildClues_Idempotent(t *testing.T) {
	p := New(&fakeSearcher{})
	employer := fullEmployer()

	first := p.BuildClues(context.Background(), result(employer))
	second := p.BuildClues(context.Background(), result(employer))
	require.Len(t, second, len(first))

	for i := range first {
		assert.Equal(t, first[i].Code, second[i].Code)
		assert.Equal(t, first[i].Data, second[i].Data)
	}
}

func TestBuildClues_PreviewImages(t *testing.T) {
	fetcher := &fakeFetcher{}
	p := New(&fakeSearcher{}, WithImageFetcher(fetcher))

	clues := p.BuildClues(context.Background(), result(fullEmployer()))
	require.Len(t, clues, 2)

	require.NotNil(t, clues[0].PreviewImage)
	assert.Equal(t, "https://media.glassdoor.com/jane.png", clues[0].PreviewImage.URL)
	require.NotNil(t, clues[1].PreviewImage)
	assert.Equal(t, "https://media.glassdoor.com/acme.png", clues[1].PreviewImage.URL)
}

func TestBuildClues_PreviewImageFailureIgnored(t *testing.T) {
	fetcher := &fakeFetcher{failing: map[string]bool{"https://media.glassdoor.com/acme.png": true}}
	p := New(&fakeSearcher{}, WithImageFetcher(fetcher))

	clues := p.BuildClues(context.Background(), result(fullEmployer()))
	require.Len(t, clues, 2)
	assert.NotNil(t, clues[0].PreviewImage)
	assert.Nil(t, clues[1].PreviewImage)
	assert.Equal(t, "Acme", clues[1].Data.Name)
}

func TestPrimaryEntityMetadata(t *testing.T) {
	p := New(&fakeSearcher{})
	employer := fullEmployer()

	metadata := p.PrimaryEntityMetadata(result(employer))
	clues := p.BuildClues(context.Background(), result(employer))

	assert.Equal(t, clues[1].Data, *metadata)
}

func TestPrimaryEntityPreviewImage(t *testing.T) {
	fetcher := &fakeFetcher{}
	p := New(&fakeSearcher{}, WithImageFetcher(fetcher))

	image := p.PrimaryEntityPreviewImage(context.Background(), result(fullEmployer()))
	require.NotNil(t, image)
	assert.Equal(t, "https://media.glassdoor.com/acme.png", image.URL)

	assert.Nil(t, p.PrimaryEntityPreviewImage(context.Background(), result(api.Employer{ID: 1})))
	assert.Nil(t, New(&fakeSearcher{}).PrimaryEntityPreviewImage(context.Background(), result(fullEmployer())))
}
