package domain

// Candidate is a hotel or flight option returned by the search collaborator.
// Hotel prices are per night; flight prices are the round-trip total.
type Candidate struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      int      `json:"price"`
	Rating     float64  `json:"rating"`
	Attributes []string `json:"attributes,omitempty"`
}

// CloneCandidates returns an independent copy of a candidate slice.
func CloneCandidates(in []Candidate) []Candidate {
	if in == nil {
		return nil
	}
	out := make([]Candidate, len(in))
	copy(out, in)
	for i := range out {
		if in[i].Attributes != nil {
			out[i].Attributes = append([]string(nil), in[i].Attributes...)
		}
	}
	return out
}

// RemoveCandidate returns the slice without the candidate carrying the given
// ID. The input slice is not mutated.
func RemoveCandidate(in []Candidate, id string) []Candidate {
	out := make([]Candidate, 0, len(in))
	for _, c := range in {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
