package valueobject

import "strings"

// ContractType is the canonical employment contract vocabulary used by the
// scoring model. Raw form input arrives in many spellings; NormalizeContractType
// maps them onto this closed set. The zero value means "not provided".
type ContractType string

const (
	ContractPermanent            ContractType = "PERMANENT"
	ContractPermanentOnProbation ContractType = "PERMANENT_ON_PROBATION"
	ContractFixedTerm12Plus      ContractType = "FIXED_TERM_12_PLUS"
	ContractFixedTermLT12        ContractType = "FIXED_TERM_LT_12"
	ContractSelfEmployed12Plus   ContractType = "SELF_EMPLOYED_12_PLUS"
	ContractPartTime             ContractType = "PART_TIME"
	ContractUnemployedOrUnknown  ContractType = "UNEMPLOYED_OR_UNKNOWN"
)

// contractAliases maps canonicalized raw tokens to the closed vocabulary.
var contractAliases = map[string]ContractType{
	"PERMANENT":              ContractPermanent,
	"FULL_TIME":              ContractPermanent,
	"FULLTIME":               ContractPermanent,
	"PERM":                   ContractPermanent,
	"PERMANENT_ON_PROBATION": ContractPermanentOnProbation,
	"PERMANENT_PROBATION":    ContractPermanentOnProbation,
	"PROBATION":              ContractPermanentOnProbation,
	"ON_PROBATION":           ContractPermanentOnProbation,
	"FIXED_TERM_12_PLUS":     ContractFixedTerm12Plus,
	"FIXED_TERM_12_MONTHS":   ContractFixedTerm12Plus,
	"FIXED_TERM_OVER_12":     ContractFixedTerm12Plus,
	"FIXED_TERM_LT_12":       ContractFixedTermLT12,
	"FIXED_TERM_UNDER_12":    ContractFixedTermLT12,
	"FIXED_TERM":             ContractFixedTermLT12,
	"CONTRACT":               ContractFixedTermLT12,
	"CONTRACTOR":             ContractFixedTermLT12,
	"TEMP":                   ContractFixedTermLT12,
	"TEMPORARY":              ContractFixedTermLT12,
	"SELF_EMPLOYED_12_PLUS":  ContractSelfEmployed12Plus,
	"SELF_EMPLOYED":          ContractSelfEmployed12Plus,
	"FREELANCE":              ContractSelfEmployed12Plus,
	"FREELANCER":             ContractSelfEmployed12Plus,
	"SOLE_PROPRIETOR":        ContractSelfEmployed12Plus,
	"PART_TIME":              ContractPartTime,
	"PARTTIME":               ContractPartTime,
	"CASUAL":                 ContractPartTime,
	"UNEMPLOYED":             ContractUnemployedOrUnknown,
	"UNEMPLOYED_OR_UNKNOWN":  ContractUnemployedOrUnknown,
	"NONE":                   ContractUnemployedOrUnknown,
	"UNKNOWN":                ContractUnemployedOrUnknown,
	"N_A":                    ContractUnemployedOrUnknown,
}

// NormalizeContractType canonicalizes a raw contract-type string and maps it
// through the alias table. Unknown tokens pass through canonicalized but
// unmapped; downstream contribution functions score unmapped values as zero.
// Empty input returns the zero value. Never fails.
func NormalizeContractType(raw string) ContractType {
	token := canonicalToken(raw)
	if token == "" {
		return ""
	}
	if mapped, ok := contractAliases[token]; ok {
		return mapped
	}
	return ContractType(token)
}

// canonicalToken uppercases the input, collapses runs of non-alphanumeric
// characters into single underscores, and strips leading/trailing underscores.
func canonicalToken(raw string) string {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))
	lastUnderscore := false
	for _, r := range raw {
		alnum := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}
