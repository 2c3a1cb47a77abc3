package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() Listing {
	return Listing{
		PropertyType: "House",
		Location: Location{
			Address: "123 Main Street",
			City:    "Mumbai",
			State:   "Maharashtra",
			ZipCode: "400001",
		},
		Price: 3500000,
		Area:  1250,
		Agent: Agent{
			Name:  "Priya Sharma",
			Email: "priya@example.com",
			Phone: "9876543210",
		},
	}
}

func TestValidate_ValidListingHasNoViolations(t *testing.T) {
	l := validListing()
	assert.Empty(t, l.Validate())
}

func TestValidate_OnlyPropertyTypeYieldsNineMessages(t *testing.T) {
	l := Listing{PropertyType: "House"}
	messages := l.Validate()

	require.Len(t, messages, 9)
	assert.Equal(t, []string{
		"Address is required",
		"City is required",
		"State is required",
		"Zip code is required",
		"Price is required",
		"Area is required",
		"Agent name is required",
		"Agent email is required",
		"Agent phone number is required",
	}, messages)
}

func TestValidate_CollectsAllViolationsAtOnce(t *testing.T) {
	l := validListing()
	l.Price = -1
	l.Bedrooms = -2
	l.Agent.Email = "not-an-email"

	messages := l.Validate()
	assert.Contains(t, messages, "Price cannot be negative")
	assert.Contains(t, messages, "Number of bedrooms cannot be negative")
	assert.Contains(t, messages, "Please enter a valid email address")
	assert.Len(t, messages, 3)
}

func TestValidate_PropertyTypeEnum(t *testing.T) {
	l := validListing()
	l.PropertyType = "Castle"
	assert.Contains(t, l.Validate(), "`Castle` is not a valid enum value for propertyType")
}

func TestValidate_StatusEnum(t *testing.T) {
	l := validListing()
	l.Status = "Archived"
	assert.Contains(t, l.Validate(), "`Archived` is not a valid enum value for status")

	l.Status = "For Rent"
	assert.Empty(t, l.Validate())
}

func TestValidate_EmailFormat(t *testing.T) {
	l := validListing()

	l.Agent.Email = "priya@example.com"
	assert.Empty(t, l.Validate())

	l.Agent.Email = "priya.example.com"
	assert.Contains(t, l.Validate(), "Please enter a valid email address")
}

func TestApplyDefaults(t *testing.T) {
	var l Listing
	l.ApplyDefaults()

	assert.Equal(t, "For Sale", l.Status)
	assert.Equal(t, "USA", l.Location.Country)
	assert.NotNil(t, l.Features)
	assert.NotNil(t, l.Photos)
}

func TestApplyDefaults_KeepsExistingValues(t *testing.T) {
	l := Listing{Status: "Sold", Location: Location{Country: "India"}}
	l.ApplyDefaults()

	assert.Equal(t, "Sold", l.Status)
	assert.Equal(t, "India", l.Location.Country)
}
