package similarity

import "testing"

func TestLevenshteinIdentical(t *testing.T) {
	if d := Levenshtein("hello", "hello"); d != 0 {
		t.Errorf("expected 0, got %d", d)
	}
}

func TestLevenshteinSingleEdit(t *testing.T) {
	if d := Levenshtein("cat", "cats"); d != 1 {
		t.Errorf("expected 1, got %d", d)
	}
	if d := Levenshtein("cat", "bat"); d != 1 {
		t.Errorf("expected 1, got %d", d)
	}
}

func TestLevenshteinEmptyStrings(t *testing.T) {
	if d := Levenshtein("", "abc"); d != 3 {
		t.Errorf("expected 3, got %d", d)
	}
}

func TestLongestCommonPrefixCaseFolded(t *testing.T) {
	if n := LongestCommonPrefix("userId", "UserID"); n != 6 {
		t.Errorf("expected full case-folded prefix of 6, got %d", n)
	}
}

func TestFindSimilarOrdersByDistanceThenScore(t *testing.T) {
	matches := FindSimilar("length", []string{"len", "lenght", "width", "lengths"}, 0, 0)
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if matches[0].Name != "lengths" {
		t.Errorf("expected closest match 'lengths' (distance 1) first, got %q", matches[0].Name)
	}
}

func TestFindSimilarExcludesExactMatch(t *testing.T) {
	matches := FindSimilar("count", []string{"count", "counts"}, 0, 0)
	for _, m := range matches {
		if m.Name == "count" {
			t.Error("expected exact match to be excluded from suggestions")
		}
	}
}

func TestFindSimilarRespectsMaxDistance(t *testing.T) {
	matches := FindSimilar("abc", []string{"xyz"}, 2, 0)
	if len(matches) != 0 {
		t.Errorf("expected no matches beyond max distance, got %v", matches)
	}
}

func TestFindSimilarRespectsMaxResults(t *testing.T) {
	matches := FindSimilar("cat", []string{"bat", "hat", "rat", "mat"}, 3, 2)
	if len(matches) != 2 {
		t.Errorf("expected truncation to 2 results, got %d", len(matches))
	}
}
