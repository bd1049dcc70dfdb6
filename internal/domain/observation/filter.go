package observation

// FilterByCategory keeps observations with a category coding whose code is
// exactly one of codes. Text-only categories never match. No codes keeps all.
func FilterByCategory(obs []*Observation, codes ...string) []*Observation {
	if len(codes) == 0 {
		return obs
	}
	out := make([]*Observation, 0, len(obs))
	for _, o := range obs {
		if hasCategory(o, codes) {
			out = append(out, o)
		}
	}
	return out
}

func hasCategory(o *Observation, codes []string) bool {
	for _, cat := range o.Category {
		for _, code := range codes {
			if cat.HasCode(code) {
				return true
			}
		}
	}
	return false
}
