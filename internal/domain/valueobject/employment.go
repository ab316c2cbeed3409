package valueobject

import (
	"strconv"
	"strings"
)

// SectorType classifies an employer into the coarse sectors the scoring model
// distinguishes. The zero value means "not provided".
type SectorType string

const (
	SectorGovernment SectorType = "government"
	SectorPrivate    SectorType = "private"
	SectorListed     SectorType = "listed"
	SectorOther      SectorType = "other"
)

var sectorAliases = map[string]SectorType{
	"GOVERNMENT":     SectorGovernment,
	"PUBLIC":         SectorGovernment,
	"PUBLIC_SECTOR":  SectorGovernment,
	"STATE":          SectorGovernment,
	"PARASTATAL":     SectorGovernment,
	"LISTED":         SectorListed,
	"LISTED_COMPANY": SectorListed,
	"JSE_LISTED":     SectorListed,
	"PUBLIC_COMPANY": SectorListed,
	"PRIVATE":        SectorPrivate,
	"PRIVATE_SECTOR": SectorPrivate,
	"COMPANY":        SectorPrivate,
	"SME":            SectorPrivate,
	"OTHER":          SectorOther,
	"NGO":            SectorOther,
	"NON_PROFIT":     SectorOther,
	"NONPROFIT":      SectorOther,
}

// NormalizeEmploymentSector maps a raw sector string onto the closed sector
// vocabulary. Unknown or empty input returns the zero value. Never fails.
func NormalizeEmploymentSector(raw string) SectorType {
	token := canonicalToken(raw)
	if token == "" {
		return ""
	}
	if mapped, ok := sectorAliases[token]; ok {
		return mapped
	}
	return ""
}

// EmployerMatch is the outcome of looking a named employer up in the curated
// employer register. It is produced outside the scoring core (the register
// lives with the onboarding flow) and consumed by the employment-category factor.
type EmployerMatch string

const (
	EmployerMatchUnknown     EmployerMatch = ""
	EmployerMatchListed      EmployerMatch = "LISTED"
	EmployerMatchHighRisk    EmployerMatch = "HIGH_RISK"
	EmployerMatchBlacklisted EmployerMatch = "BLACKLISTED"
	EmployerMatchNotFound    EmployerMatch = "NOT_FOUND"
)

// NormalizeEmployerMatch maps a raw register-lookup outcome onto the closed
// match vocabulary. Unknown input returns EmployerMatchUnknown. Never fails.
func NormalizeEmployerMatch(raw string) EmployerMatch {
	switch EmployerMatch(canonicalToken(raw)) {
	case EmployerMatchListed:
		return EmployerMatchListed
	case EmployerMatchHighRisk:
		return EmployerMatchHighRisk
	case EmployerMatchBlacklisted:
		return EmployerMatchBlacklisted
	case EmployerMatchNotFound:
		return EmployerMatchNotFound
	default:
		return EmployerMatchUnknown
	}
}

// NormalizeYearsAtEmployer converts free-form tenure input into months.
// Accepted shapes: "4" (years), "4 years", "18 months", "1-2 years"
// (midpoint), "less than 1 year" (six months), "5+ years" (lower bound).
// Returns ok=false for unparseable input. Never fails.
func NormalizeYearsAtEmployer(raw string) (months int, ok bool) {
	token := canonicalToken(raw)
	if token == "" {
		return 0, false
	}

	inMonths := strings.Contains(token, "MONTH")
	token = strings.NewReplacer(
		"LESS_THAN_", "LT_",
		"_YEARS", "", "_YEAR", "", "_YRS", "", "_YR", "",
		"_MONTHS", "", "_MONTH", "",
		"MORE_THAN_", "", "OVER_", "",
	).Replace(token)

	// "LT_1" style buckets take the midpoint of zero and the bound.
	if n, found := strings.CutPrefix(token, "LT_"); found {
		if v, err := strconv.Atoi(n); err == nil && v >= 0 {
			if inMonths {
				return v / 2, true
			}
			return v * 12 / 2, true
		}
		return 0, false
	}

	// "1_2" style ranges take the midpoint.
	if lo, hi, found := strings.Cut(token, "_"); found {
		l, errL := strconv.Atoi(lo)
		h, errH := strconv.Atoi(hi)
		if errL == nil && errH == nil && h >= l && l >= 0 {
			mid := (l + h) * 12 / 2
			if inMonths {
				mid = (l + h) / 2
			}
			return mid, true
		}
		return 0, false
	}

	// "5" or "5+" style values take the stated bound.
	if v, err := strconv.Atoi(token); err == nil && v >= 0 {
		if inMonths {
			return v, true
		}
		return v * 12, true
	}

	return 0, false
}
