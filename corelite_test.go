package corelite

import "testing"

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"simple literal", "hello", false},
		{"period", "a.c", false},
		{"alternation", "foo|bar", false},
		{"grouping", "a(b|c)d", false},
		{"unmatched open paren", "(abc", true},
		{"unmatched close paren", "abc)", true},
		{"unsupported repetition", "a+", true},
		{"unsupported char class", "[abc]", true},
		{"empty pattern", "", true},
		{"empty group reduces to empty", "()", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.pattern, err, tt.wantErr)
			}
			if !tt.wantErr && p == nil {
				t.Fatalf("New(%q) returned nil pattern with no error", tt.pattern)
			}
		})
	}
}

func TestMustCompilePanicsOnInvalidPattern(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCompile did not panic on invalid pattern")
		}
	}()
	MustCompile("(", DefaultOptions())
}

func TestPattern_MatchFull(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    bool
	}{
		{"exact match", "hello", "hello", true},
		{"partial is not full", "hello", "hello world", false},
		{"alternation branch", "cat|dog", "dog", true},
		{"grouped alternation", "a(b|c)d", "acd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.pattern)
			if err != nil {
				t.Fatalf("New(%q) = %v", tt.pattern, err)
			}
			if got := p.MatchFull([]byte(tt.text)); got != tt.want {
				t.Errorf("MatchFull(%q, %q) = %v, want %v", tt.pattern, tt.text, got, tt.want)
			}
		})
	}
}

func TestPattern_MatchAnywhere(t *testing.T) {
	p, err := New("cat|dog")
	if err != nil {
		t.Fatalf("New = %v", err)
	}

	start, end, ok := p.MatchAnywhere([]byte("I have a dog and a cat"))
	if !ok || start != 9 || end != 12 {
		t.Errorf("MatchAnywhere = (%d, %d, %v), want (9, 12, true)", start, end, ok)
	}

	if _, _, ok := p.MatchAnywhere([]byte("no pets here")); ok {
		t.Error("MatchAnywhere found a match where none exists")
	}
}

func TestPattern_MatchAll(t *testing.T) {
	p, err := New("foo")
	if err != nil {
		t.Fatalf("New = %v", err)
	}

	got := p.MatchAll([]byte("foo bar foo baz foo"))
	want := []Range{{Start: 0, End: 3}, {Start: 8, End: 11}, {Start: 16, End: 19}}
	if len(got) != len(want) {
		t.Fatalf("MatchAll = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MatchAll[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPattern_AhoCorasickPrefilterAgreesWithSimulation(t *testing.T) {
	// "cat|dog|bird" is a pure literal alternation, so Compile builds an
	// Aho-Corasick prefilter; confirm it never disagrees with the
	// simulation it's meant to fast-reject in front of.
	p, err := New("cat|dog|bird")
	if err != nil {
		t.Fatalf("New = %v", err)
	}
	if p.ahoPrefilter == nil {
		t.Fatal("expected an Aho-Corasick prefilter for a pure literal alternation")
	}

	texts := []string{"I have a cat", "I have a dog", "I have a bird", "I have a fish"}
	for _, text := range texts {
		_, _, viaSim := p.MatchAnywhere([]byte(text))
		prefilterSaysMaybe := p.ahoPrefilter.IsMatch([]byte(text))
		if !prefilterSaysMaybe && viaSim {
			t.Errorf("prefilter rejected %q but simulation matched it", text)
		}
	}
}

func TestPattern_NoPrefilterForImpurePattern(t *testing.T) {
	p, err := New("a.c")
	if err != nil {
		t.Fatalf("New = %v", err)
	}
	if p.ahoPrefilter != nil {
		t.Error("expected no Aho-Corasick prefilter for a pattern containing '.'")
	}
}
