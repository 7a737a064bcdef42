package entity

// Merge fuses a new extraction into the prior accumulated entities.
// For each attribute the higher-confidence value wins; on an exact tie the
// model-sourced value is preferred (assumed higher contextual accuracy).
// Attributes absent from next leave the prior value untouched, so merging
// is idempotent: Merge(Merge(p, n), n) == Merge(p, n).
func Merge(prior, next Entities) Entities {
	out := prior
	out.Industry = mergeString(prior.Industry, next.Industry)
	out.Location = mergeString(prior.Location, next.Location)
	out.Roles = mergeStrings(prior.Roles, next.Roles)
	out.RoleCount = mergeInt(prior.RoleCount, next.RoleCount)
	out.Urgency = mergeString(prior.Urgency, next.Urgency)
	out.Budget = mergeString(prior.Budget, next.Budget)
	out.Company = mergeString(prior.Company, next.Company)
	out.Experience = mergeString(prior.Experience, next.Experience)
	return out
}

// Overwrite replaces every attribute present in next regardless of
// confidence, keeping prior values only where next is silent. Used after a
// contradiction so corrected values displace the old ones.
func Overwrite(prior, next Entities) Entities {
	out := prior
	if next.Industry.Present() {
		out.Industry = next.Industry
	}
	if next.Location.Present() {
		out.Location = next.Location
	}
	if next.Roles.Present() {
		out.Roles = next.Roles
		out.RoleCount = next.RoleCount
	} else if next.RoleCount.Present() {
		out.RoleCount = next.RoleCount
	}
	if next.Urgency.Present() {
		out.Urgency = next.Urgency
	}
	if next.Budget.Present() {
		out.Budget = next.Budget
	}
	if next.Company.Present() {
		out.Company = next.Company
	}
	if next.Experience.Present() {
		out.Experience = next.Experience
	}
	return out
}

// wins decides whether the incoming attribute replaces the prior one.
// Strictly higher confidence always replaces; an exact tie replaces only
// when the incoming value is model-sourced.
func wins(priorConf, nextConf float64, nextSource Source) bool {
	if nextConf > priorConf {
		return true
	}
	return nextConf == priorConf && nextSource == SourceLLM
}

func mergeString(prior, next StringAttr) StringAttr {
	if !next.Present() {
		return prior
	}
	if !prior.Present() || wins(prior.Confidence, next.Confidence, next.Source) {
		return next
	}
	return prior
}

func mergeStrings(prior, next StringsAttr) StringsAttr {
	if !next.Present() {
		return prior
	}
	if !prior.Present() || wins(prior.Confidence, next.Confidence, next.Source) {
		return next
	}
	return prior
}

func mergeInt(prior, next IntAttr) IntAttr {
	if !next.Present() {
		return prior
	}
	if !prior.Present() || wins(prior.Confidence, next.Confidence, next.Source) {
		return next
	}
	return prior
}
