package gbapack

// A GreedyParser implements the greedy matching strategy: It goes from start
// to end, choosing the longest match at each position. This reproduces the
// parse the stock GBA tools use, so with an exhaustive Searcher the output
// is byte-identical to theirs.
type GreedyParser struct {
	matchCache []AbsoluteMatch
}

func (p *GreedyParser) Parse(dst []Match, src Searcher, start, end int) []Match {
	matches := p.matchCache[:0]
	s := start
	nextEmit := start
	var m AbsoluteMatch

mainLoop:
	for {
		nextS := s
		for {
			s = nextS
			nextS = s + 1
			if s >= end {
				break mainLoop
			}

			matches = src.Search(matches[:0], s, nextEmit, end)
			m = longestMatch(matches)
			if m.End >= m.Start+MinMatch {
				break
			}
		}

		dst = append(dst, Match{
			Unmatched: m.Start - nextEmit,
			Length:    m.End - m.Start,
			Distance:  m.Start - m.Match,
		})
		s = m.End
		nextEmit = s
	}

	if nextEmit < end {
		dst = append(dst, Match{
			Unmatched: end - nextEmit,
		})
	}
	p.matchCache = matches[:0]
	return dst
}

// A LazyParser looks one position ahead before committing to a match: if the
// next position holds a strictly longer match, it emits a literal instead and
// takes the longer one. It usually beats GreedyParser by a little, at the
// cost of no longer matching the stock tools' output byte for byte.
type LazyParser struct {
	matchCache []AbsoluteMatch
}

func (p *LazyParser) Parse(dst []Match, src Searcher, start, end int) []Match {
	matches := p.matchCache[:0]
	s := start
	nextEmit := start
	var m AbsoluteMatch

mainLoop:
	for {
		nextS := s
		for {
			s = nextS
			nextS = s + 1
			if s >= end {
				break mainLoop
			}

			matches = src.Search(matches[:0], s, nextEmit, end)
			m = longestMatch(matches)
			if m.End >= m.Start+MinMatch {
				break
			}
		}

		// Defer to the next position while it holds a longer match.
		for m.Start+1 < end && m.End-m.Start < MaxMatch {
			matches = src.Search(matches[:0], m.Start+1, nextEmit, end)
			next := longestMatch(matches)
			if next.End-next.Start <= m.End-m.Start {
				break
			}
			m = next
		}

		dst = append(dst, Match{
			Unmatched: m.Start - nextEmit,
			Length:    m.End - m.Start,
			Distance:  m.Start - m.Match,
		})
		s = m.End
		nextEmit = s
	}

	if nextEmit < end {
		dst = append(dst, Match{
			Unmatched: end - nextEmit,
		})
	}
	p.matchCache = matches[:0]
	return dst
}

func longestMatch(matches []AbsoluteMatch) AbsoluteMatch {
	var longest AbsoluteMatch

	for _, m := range matches {
		if m.End-m.Start > longest.End-longest.Start {
			longest = m
		}
	}

	return longest
}
