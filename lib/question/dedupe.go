package question

// Dedupe keeps the first record seen for every (company_name,
// interview_question) pair, in input order. Later records with the same key are
// dropped even if their role, difficulty or url differ.
func Dedupe(records []Record) []Record {
	seen := make(map[Key]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		key := r.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
