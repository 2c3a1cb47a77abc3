package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice_LakhAndCrore(t *testing.T) {
	assert.Equal(t, "3500000", Price("35 lakh"))
	assert.Equal(t, "3500000", Price("35 Lakh"))
	assert.Equal(t, "3500000", Price("thirty five... 35 lac"))
	assert.Equal(t, "25000000", Price("2.5 crore"))
	assert.Equal(t, "20000000", Price("2 cr"))
}

func TestPrice_PlainNumbers(t *testing.T) {
	assert.Equal(t, "4500000", Price("4500000"))
	assert.Equal(t, "4500000", Price("the price is 4500000 rupees"))
	assert.Equal(t, "1200.5", Price("1200.5"))
}

func TestPrice_NoNumber(t *testing.T) {
	assert.Equal(t, "", Price("no idea"))
	assert.Equal(t, "", Price(""))
}

func TestDigits_StripsNonDigits(t *testing.T) {
	assert.Equal(t, "400001", Digits("pin code 400001 please"))
	assert.Equal(t, "3", Digits("3 bedrooms"))
}

func TestDigits_Idempotent(t *testing.T) {
	once := Digits("phone 98765 43210")
	assert.Equal(t, once, Digits(once))
}

func TestDecimal_KeepsDotAndDigits(t *testing.T) {
	assert.Equal(t, "1250.5", Decimal("about 1250.5 square feet"))
}

func TestRegion_ExactMatch(t *testing.T) {
	assert.Equal(t, "Maharashtra", Region("Maharashtra"))
	assert.Equal(t, "Maharashtra", Region("maharashtra"))
}

func TestRegion_SubstringMatch(t *testing.T) {
	assert.Equal(t, "Maharashtra", Region("I live in Maharashtra state"))
	assert.Equal(t, "Karnataka", Region("karnataka please"))
}

func TestRegion_FuzzyMatch(t *testing.T) {
	// распознаватель часто теряет букву
	assert.Equal(t, "Maharashtra", Region("Maharastra"))
	assert.Equal(t, "Karnataka", Region("Karnatka"))
}

func TestRegion_UnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "Atlantis", Region("Atlantis"))
	assert.Equal(t, "", Region("   "))
}

func TestPropertyType_SubstringMatch(t *testing.T) {
	assert.Equal(t, "House", PropertyType("it's a house"))
	assert.Equal(t, "Apartment", PropertyType("APARTMENT"))
	assert.Equal(t, "Villa", PropertyType("a villa near the beach"))
}

func TestPropertyType_UnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "castle", PropertyType("castle"))
}

func TestEmail_Lowercased(t *testing.T) {
	assert.Equal(t, "agent@example.com", Email("  Agent@Example.COM "))
}

func TestCommaList(t *testing.T) {
	assert.Equal(t, []string{"pool", "garage", "garden"}, CommaList("pool, garage , garden"))
	assert.Equal(t, []string{}, CommaList("  "))
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "Yes", YesNo("Yes please"))
	assert.Equal(t, "Yes", YesNo("yes"))
	assert.Equal(t, "No", YesNo("nope"))
	assert.Equal(t, "No", YesNo(""))
}
