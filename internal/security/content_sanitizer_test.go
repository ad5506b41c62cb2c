package security

import "testing"

// TestSanitize_StripsAllTags はすべてのHTMLタグが除去されることをテストする。
func TestSanitize_StripsAllTags(t *testing.T) {
	s := NewContentSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"プレーンテキスト", "普通のタイトル", "普通のタイトル"},
		{"scriptタグ", `<script>alert("xss")</script>本文`, "本文"},
		{"装飾タグ", "<b>太字</b>と<em>強調</em>", "太字と強調"},
		{"イベント属性付きタグ", `<img src=x onerror="alert(1)">説明`, "説明"},
		{"前後の空白", "  余白あり  ", "余白あり"},
		{"空文字列", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestSanitize_Idempotent は同一入力に対して常に同一出力となることをテストする。
func TestSanitize_Idempotent(t *testing.T) {
	s := NewContentSanitizer()
	input := `<div><script>x</script>テキスト</div>`

	first := s.Sanitize(input)
	second := s.Sanitize(first)
	if first != second {
		t.Errorf("Sanitize is not idempotent: %q -> %q", first, second)
	}
}
