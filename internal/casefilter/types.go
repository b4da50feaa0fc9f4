package casefilter

// typeKeywords maps each enumerated case type to the synonym keywords that
// identify it in case text. A type missing from this table falls back to
// matching the type string itself.
var typeKeywords = map[string][]string{
	"criminal": {
		"criminal", "murder", "theft", "robbery", "assault", "fraud",
		"homicide", "manslaughter", "rape", "burglary", "kidnapping",
		"drug", "narcotic", "offence", "offense", "prosecution",
		"conviction", "sentence", "penal", "prison",
	},
	"civil": {
		"civil", "contract", "tort", "negligence", "damages",
		"compensation", "liability", "breach", "plaintiff", "defendant",
		"suit", "claim",
	},
	"constitutional": {
		"constitutional", "constitution", "fundamental", "rights",
		"human rights", "freedom", "liberty", "democracy", "election",
		"vote", "amendment", "charter",
	},
	"administrative": {
		"administrative", "administrator", "government", "public",
		"authority", "agency", "regulation", "policy", "executive",
		"minister", "department",
	},
	"commercial": {
		"commercial", "business", "trade", "company", "corporation",
		"partnership", "merchant", "sale", "purchase", "transaction",
		"commerce", "corporate",
	},
	"family": {
		"family", "divorce", "marriage", "custody", "child", "parent",
		"adoption", "maintenance", "alimony", "spouse", "matrimonial",
		"domestic",
	},
	"labor": {
		"labor", "labour", "employment", "employee", "employer", "work",
		"worker", "union", "strike", "wage", "salary", "dismissal",
		"termination", "industrial",
	},
	"property": {
		"property", "land", "real estate", "ownership", "title", "deed",
		"lease", "leasehold", "freehold", "mortgage", "tenancy",
		"landlord", "tenant", "eviction", "possession", "acquisition",
		"compulsory", "expropriation", "conveyance", "transfer",
		"purchase", "sale", "immovable", "realty",
	},
}

// CaseTypes returns the enumerated case types the synonym table recognizes.
func CaseTypes() []string {
	types := make([]string, 0, len(typeKeywords))
	for t := range typeKeywords {
		types = append(types, t)
	}
	return types
}
