package domain

import "testing"

func TestParseVocabularyEntry(t *testing.T) {
	t.Run("通常の形式が分解できること", func(t *testing.T) {
		e := ParseVocabularyEntry("share: to give part of what you have to others")
		if e.Term != "share" {
			t.Errorf("用語が一致しません: %q", e.Term)
		}
		if e.Definition != "to give part of what you have to others" {
			t.Errorf("定義が一致しません: %q", e.Definition)
		}
	})

	t.Run("区切りが無い場合に代替文へフォールバックすること", func(t *testing.T) {
		e := ParseVocabularyEntry("generous")
		if e.Term != "generous" {
			t.Errorf("用語が一致しません: %q", e.Term)
		}
		if e.Definition != DefaultVocabularyDefinition {
			t.Errorf("代替文になっていません: %q", e.Definition)
		}
	})

	t.Run("定義が空の場合も代替文へフォールバックすること", func(t *testing.T) {
		e := ParseVocabularyEntry("kindness:   ")
		if e.Definition != DefaultVocabularyDefinition {
			t.Errorf("代替文になっていません: %q", e.Definition)
		}
	})

	t.Run("定義側にもコロンが含まれる場合は最初の区切りで分解すること", func(t *testing.T) {
		e := ParseVocabularyEntry("time: 10:30 in the morning")
		if e.Term != "time" || e.Definition != "10:30 in the morning" {
			t.Errorf("分解結果が一致しません: %+v", e)
		}
	})
}

func TestWorksheetContent_Normalize(t *testing.T) {
	t.Run("超過分が切り捨てられること", func(t *testing.T) {
		c := WorksheetContent{
			Comprehension: []string{"q1", "q2", "q3", "q4", "q5"},
			Vocabulary:    []string{"a: 1", "b: 2", "c: 3", "d: 4"},
			WritingPrompt: "write",
		}
		c.Normalize()
		if len(c.Comprehension) != WorksheetComprehensionCount {
			t.Errorf("読解問題が %d 問あります", len(c.Comprehension))
		}
		if c.Comprehension[0] != "q1" || c.Comprehension[2] != "q3" {
			t.Errorf("切り捨てで順序が崩れました: %v", c.Comprehension)
		}
		if len(c.Vocabulary) != WorksheetVocabularyCount {
			t.Errorf("語彙が %d 語あります", len(c.Vocabulary))
		}
	})

	t.Run("不足分が汎用の項目で補われること", func(t *testing.T) {
		c := WorksheetContent{
			Comprehension: []string{"only one"},
			Vocabulary:    nil,
			WritingPrompt: "",
		}
		c.Normalize()
		if len(c.Comprehension) != WorksheetComprehensionCount {
			t.Fatalf("読解問題が %d 問しかありません", len(c.Comprehension))
		}
		if c.Comprehension[0] != "only one" {
			t.Errorf("既存の問題が失われました: %v", c.Comprehension)
		}
		if len(c.Vocabulary) != WorksheetVocabularyCount {
			t.Fatalf("語彙が %d 語しかありません", len(c.Vocabulary))
		}
		if c.WritingPrompt == "" {
			t.Error("作文課題が補われていません")
		}
	})

	t.Run("空白だけの項目が除外されること", func(t *testing.T) {
		c := WorksheetContent{
			Comprehension: []string{"q1", "   ", "q2", "q3"},
			Vocabulary:    []string{"a: 1", "", "b: 2", "c: 3"},
			WritingPrompt: "write",
		}
		c.Normalize()
		want := []string{"q1", "q2", "q3"}
		for i, q := range want {
			if c.Comprehension[i] != q {
				t.Errorf("読解問題 %d が一致しません: %q", i, c.Comprehension[i])
			}
		}
	})
}
