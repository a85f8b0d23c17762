package litua

import (
	"strings"
	"testing"
)

func BenchmarkLexerPlainText(b *testing.B) {
	src := NewSource("<bench>", strings.Repeat("the quick brown fox ", 200))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lex := NewLexer(src)
		for {
			_, ok, err := lex.Next()
			if !ok {
				if err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
				break
			}
		}
	}
}

func BenchmarkLexerNestedFunctions(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("{outer[key=value] some text {inner} more text}")
	}
	src := NewSource("<bench>", sb.String())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lex := NewLexer(src)
		for {
			_, ok, err := lex.Next()
			if !ok {
				if err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
				break
			}
		}
	}
}
