package scoring

import (
	"strings"

	"github.com/pipeforge/lead-api/internal/domain"
)

// MaxScore is the upper bound for every computed score
const MaxScore = 100

// Score computes the base score of a lead from its current attributes.
// Pure and deterministic: the same attributes always yield the same value,
// so recomputation is safe at any time. The result is capped at MaxScore.
func Score(lead *domain.Lead) int {
	total := ratingPoints(lead.Rating) +
		companySizePoints(lead.CompanySize) +
		revenuePoints(lead.AnnualRevenue) +
		sourcePoints(lead.Source) +
		statusPoints(lead.Status) +
		completenessPoints(lead)

	if total > MaxScore {
		return MaxScore
	}
	return total
}

// QualificationDelta computes the score delta for the qualification
// workflow from the BANT inputs plus an explicit adjustment. The caller
// clamps the resulting score; the delta itself is unbounded.
func QualificationDelta(budget *float64, authority *bool, need, timeline string, adjustment int) int {
	delta := adjustment

	if budget != nil && *budget >= 10000 {
		delta += 15
	}
	if authority != nil && *authority {
		delta += 10
	}
	if strings.TrimSpace(need) != "" {
		delta += 10
	}

	tl := strings.ToLower(timeline)
	if strings.Contains(tl, "immediate") {
		delta += 15
	}
	if strings.Contains(tl, "quarter") {
		delta += 10
	}

	return delta
}

// Clamp bounds a score to [0, MaxScore]
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

func ratingPoints(rating domain.LeadRating) int {
	switch rating {
	case domain.LeadRatingHot:
		return 30
	case domain.LeadRatingWarm:
		return 20
	case domain.LeadRatingCold:
		return 10
	}
	return 0
}

func companySizePoints(size domain.CompanySize) int {
	switch size {
	case domain.CompanySizeEnterprise:
		return 25
	case domain.CompanySizeMid:
		return 15
	case domain.CompanySizeSmall:
		return 10
	}
	return 0
}

func revenuePoints(revenue float64) int {
	switch {
	case revenue >= 10_000_000:
		return 25
	case revenue >= 1_000_000:
		return 15
	case revenue >= 100_000:
		return 10
	}
	return 0
}

func sourcePoints(source domain.LeadSource) int {
	switch source {
	case domain.LeadSourceReferral, domain.LeadSourcePartner:
		return 20
	case domain.LeadSourceWebsite, domain.LeadSourceEvent:
		return 15
	case domain.LeadSourceEmail, domain.LeadSourceSocial:
		return 10
	case domain.LeadSourceColdOutreach, domain.LeadSourceAdvertisement:
		return 5
	}
	return 0
}

func statusPoints(status domain.LeadStatus) int {
	switch status {
	case domain.LeadStatusQualified, domain.LeadStatusProposal, domain.LeadStatusNegotiation:
		return 20
	case domain.LeadStatusQualifying, domain.LeadStatusContacted:
		return 10
	case domain.LeadStatusNew:
		return 5
	}
	return 0
}

func completenessPoints(lead *domain.Lead) int {
	points := 0
	if lead.Email != "" {
		points += 5
	}
	if lead.Phone != "" || lead.Mobile != "" {
		points += 5
	}
	if lead.Website != "" {
		points += 3
	}
	if lead.City != "" && lead.State != "" && lead.Country != "" {
		points += 7
	}
	return points
}
