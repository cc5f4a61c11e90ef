// Package category assigns budget categories to spending buckets using an
// ordered keyword rule table. The table is data, not control flow: adding a
// keyword means adding a row, and the evaluation order is fixed so that
// classification stays reproducible.
package category

import "strings"

type Bucket string

const (
	BucketNeeds   Bucket = "NEEDS"
	BucketWants   Bucket = "WANTS"
	BucketSavings Bucket = "SAVINGS"
)

type rule struct {
	keyword string
	// exclude suppresses the rule when the key also contains this substring,
	// e.g. "food" must not capture "fast food dining".
	exclude string
	bucket  Bucket
}

// rules are evaluated top to bottom; the first match wins. NEEDS rows come
// before WANTS before SAVINGS, so a key matching several lists lands in the
// earliest one.
var rules = []rule{
	{keyword: "rent", bucket: BucketNeeds},
	{keyword: "mortgage", bucket: BucketNeeds},
	{keyword: "utilities", bucket: BucketNeeds},
	{keyword: "insurance", bucket: BucketNeeds},
	{keyword: "loan", bucket: BucketNeeds},
	{keyword: "medical", bucket: BucketNeeds},
	{keyword: "groceries", bucket: BucketNeeds},
	{keyword: "food", exclude: "dining", bucket: BucketNeeds},
	{keyword: "transfer", bucket: BucketNeeds},
	{keyword: "payment", bucket: BucketNeeds},
	{keyword: "entertainment", bucket: BucketWants},
	{keyword: "dining", bucket: BucketWants},
	{keyword: "shopping", bucket: BucketWants},
	{keyword: "hobbies", bucket: BucketWants},
	{keyword: "personal", exclude: "personal care", bucket: BucketWants},
	{keyword: "merchandise", bucket: BucketWants},
	{keyword: "savings", bucket: BucketSavings},
	{keyword: "investment", bucket: BucketSavings},
	{keyword: "retirement", bucket: BucketSavings},
}

// Classify maps a category key to exactly one bucket. Matching is
// case-insensitive substring matching with underscores treated as spaces, so
// "LOAN_PAYMENTS" matches "loan". Unmatched keys classify as NEEDS, the
// conservative default.
func Classify(categoryKey string) Bucket {
	key := normalize(categoryKey)
	for _, r := range rules {
		if !strings.Contains(key, r.keyword) {
			continue
		}
		if r.exclude != "" && strings.Contains(key, r.exclude) {
			continue
		}
		return r.bucket
	}
	return BucketNeeds
}

func normalize(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", " ")
}
