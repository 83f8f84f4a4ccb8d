package game

const PartSize = 10

// Part addresses a slice of a subject's active questions. Start and End are
// 1-based inclusive ordinals, the way they are shown to learners.
type Part struct {
	Index int `json:"index"`
	Start int `json:"start"`
	End   int `json:"end"`
}

func (p Part) Size() int {
	return p.End - p.Start + 1
}

// PartsFor splits active questions into fixed-size parts. The last part may be short.
func PartsFor(active []Question) []Part {
	n := len(active)
	count := (n + PartSize - 1) / PartSize
	parts := make([]Part, 0, count)
	for i := 0; i < count; i++ {
		end := (i + 1) * PartSize
		if end > n {
			end = n
		}
		parts = append(parts, Part{Index: i, Start: i*PartSize + 1, End: end})
	}
	return parts
}

// PartQuestions returns the questions of part index, or nil when the part is out of range.
func PartQuestions(active []Question, index int) []Question {
	if index < 0 {
		return nil
	}
	start := index * PartSize
	if start >= len(active) {
		return nil
	}
	end := start + PartSize
	if end > len(active) {
		end = len(active)
	}
	return active[start:end]
}
