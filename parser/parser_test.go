package parser

import (
	"errors"
	"testing"

	"github.com/coregx/corelite/ast"
)

func TestParse_Accepted(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"single literal", "abc"},
		{"period", "."},
		{"mixed literal and period", "a.c"},
		{"simple alternation", "a|b"},
		{"multi-branch alternation", "a|b|c"},
		{"grouping", "(abc)"},
		{"grouping with alternation", "(a|b)c"},
		{"nested grouping", "((a))"},
		{"escaped metacharacter", `a\.b`},
		{"escaped backslash", `a\\b`},
		{"literal merges across empty group", "a()b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(tt.pattern, DefaultOptions())
			if err != nil {
				t.Fatalf("Parse(%q) = %v", tt.pattern, err)
			}
			if tree == nil {
				t.Fatalf("Parse(%q) returned nil tree with no error", tt.pattern)
			}
		})
	}
}

func TestParse_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		wantStatus Status
		wantOffset int
	}{
		{"empty pattern", "", StatusParserError, 0},
		{"pattern collapses to empty", "()", StatusParserError, 0},
		{"unmatched close paren", "abc)", StatusParserMissingLeftParenthesis, 3},
		{"unmatched open paren", "(abc", StatusParserMissingRightParenthesis, 0},
		{"unmatched open paren nested", "a(b(c)", StatusParserMissingRightParenthesis, 1},
		{"trailing backslash", `a\`, StatusParserUnexpected, 1},
		{"invalid escape", `a\x`, StatusParserUnexpected, 2},
		{"star unsupported", "a*", StatusParserUnsupported, 1},
		{"plus unsupported", "a+", StatusParserUnsupported, 1},
		{"question unsupported", "a?", StatusParserUnsupported, 1},
		{"caret unsupported", "^a", StatusParserUnsupported, 0},
		{"dollar unsupported", "a$", StatusParserUnsupported, 1},
		{"char class unsupported", "[abc]", StatusParserUnsupported, 0},
		{"brace unsupported", "a{2}", StatusParserUnsupported, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.pattern, DefaultOptions())
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.pattern)
			}
			if err.Status != tt.wantStatus {
				t.Errorf("Parse(%q) status = %v, want %v", tt.pattern, err.Status, tt.wantStatus)
			}
			if err.Offset != tt.wantOffset {
				t.Errorf("Parse(%q) offset = %d, want %d", tt.pattern, err.Offset, tt.wantOffset)
			}
		})
	}
}

func TestParse_LiteralMerging(t *testing.T) {
	tree, err := Parse("a()b", DefaultOptions())
	if err != nil {
		t.Fatalf("Parse = %v", err)
	}
	lit, ok := tree.(*ast.MultipleChar)
	if !ok {
		t.Fatalf("tree = %T, want *ast.MultipleChar", tree)
	}
	if string(lit.Bytes) != "ab" {
		t.Errorf("tree bytes = %q, want %q", lit.Bytes, "ab")
	}
}

func TestParse_UnsupportedBracketAndBraceAreNotSpecial(t *testing.T) {
	// The grammar's dispatch table only rejects { * + ? ^ $ [ explicitly;
	// since this engine never enters a bracket-class parsing mode, a bare
	// ']' or '}' is just an ordinary literal byte.
	tree, err := Parse("a]b}c", DefaultOptions())
	if err != nil {
		t.Fatalf("Parse(%q) = %v", "a]b}c", err)
	}
	lit, ok := tree.(*ast.MultipleChar)
	if !ok {
		t.Fatalf("tree = %T, want *ast.MultipleChar", tree)
	}
	if string(lit.Bytes) != "a]b}c" {
		t.Errorf("tree bytes = %q, want %q", lit.Bytes, "a]b}c")
	}
}

func TestParse_WithoutParserOpt(t *testing.T) {
	opts := Options{ParserOpt: false}
	tree, err := Parse("ab", opts)
	if err != nil {
		t.Fatalf("Parse = %v", err)
	}
	// Without collapsing, a two-byte literal run is still merged at the
	// byte level (pushLiteralByte always merges into the running
	// MultipleChar); ParserOpt only affects whether a single surviving
	// child gets unwrapped from its Concatenation/Alternation wrapper.
	alt, ok := tree.(*ast.Alternation)
	if !ok || len(alt.Children) != 1 {
		t.Fatalf("tree = %v, want a one-child *ast.Alternation", tree)
	}
	cat, ok := alt.Children[0].(*ast.Concatenation)
	if !ok || len(cat.Children) != 1 {
		t.Fatalf("alternation child = %v, want a one-child *ast.Concatenation", alt.Children[0])
	}
	lit, ok := cat.Children[0].(*ast.MultipleChar)
	if !ok || string(lit.Bytes) != "ab" {
		t.Fatalf("concatenation child = %v, want Lit(\"ab\")", cat.Children[0])
	}
}

func TestParse_ErrorUnwrap(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		target  error
	}{
		{"unsupported", "a*", ErrParserUnsupported},
		{"unexpected", `a\`, ErrParserUnexpected},
		{"missing left paren", "abc)", ErrParserMissingLeftParenthesis},
		{"missing right paren", "(abc", ErrParserMissingRightParenthesis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.pattern, DefaultOptions())
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.pattern)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("Parse(%q): errors.Is(err, %v) = false", tt.pattern, tt.target)
			}
		})
	}
}

func TestParse_ErrorUnwrapNilForGenericStatus(t *testing.T) {
	_, err := Parse("", DefaultOptions())
	if err == nil {
		t.Fatal("Parse(\"\") succeeded, want error")
	}
	if err.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil for StatusParserError", err.Unwrap())
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusSuccess, "Success"},
		{StatusOutOfMemory, "OutOfMemory"},
		{StatusParserError, "ParserError"},
		{StatusParserUnsupported, "ParserUnsupported"},
		{StatusParserUnexpected, "ParserUnexpected"},
		{StatusParserMissingLeftParenthesis, "ParserMissingLeftParenthesis"},
		{StatusParserMissingRightParenthesis, "ParserMissingRightParenthesis"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
