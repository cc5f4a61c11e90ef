package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		key  string
		want Bucket
	}{
		{"RENT", BucketNeeds},
		{"MORTGAGE_PAYMENT", BucketNeeds},
		{"Utilities", BucketNeeds},
		{"car_insurance", BucketNeeds},
		{"STUDENT_LOAN", BucketNeeds},
		{"medical_bills", BucketNeeds},
		{"GROCERIES", BucketNeeds},
		{"FOOD_AND_DRINK", BucketNeeds},
		{"BANK_TRANSFER", BucketNeeds},
		{"ENTERTAINMENT", BucketWants},
		{"FAST_FOOD_DINING", BucketWants},
		{"SHOPPING", BucketWants},
		{"hobbies", BucketWants},
		{"PERSONAL", BucketWants},
		{"GENERAL_MERCHANDISE", BucketWants},
		{"SAVINGS", BucketSavings},
		{"INVESTMENT_ACCOUNT", BucketSavings},
		{"RETIREMENT", BucketSavings},
		// unmatched keys default to NEEDS
		{"SOMETHING_ELSE", BucketNeeds},
		{"", BucketNeeds},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.key))
		})
	}
}

func TestClassify_CarveOuts(t *testing.T) {
	// "food" alone is a need, but dining carves it into wants
	assert.Equal(t, BucketNeeds, Classify("FOOD"))
	assert.Equal(t, BucketWants, Classify("FOOD_DINING"))

	// "personal" is a want, but personal care is excluded from the rule and
	// falls through to the NEEDS default
	assert.Equal(t, BucketWants, Classify("PERSONAL_SHOPPING"))
	assert.Equal(t, BucketNeeds, Classify("PERSONAL_CARE"))
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// matches both "loan" (NEEDS) and "payment" (NEEDS) and "shopping" (WANTS);
	// the earliest rule in the table decides
	assert.Equal(t, BucketNeeds, Classify("LOAN_SHOPPING_PAYMENT"))
	// "savings" appears late in the table, so a key also matching "transfer"
	// stays NEEDS
	assert.Equal(t, BucketNeeds, Classify("SAVINGS_TRANSFER"))
}

func TestClassify_Deterministic(t *testing.T) {
	keys := []string{"RENT", "FOOD_DINING", "PERSONAL_CARE", "UNKNOWN_THING", "RETIREMENT"}
	for _, key := range keys {
		first := Classify(key)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Classify(key), "key %s", key)
		}
	}
}
