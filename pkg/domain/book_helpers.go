package domain

import (
	"fmt"
	"strings"
)

// UpdatePageText は指定ページの本文を書き換えます。
// 主テキストを空にすることはできません。画像とレイアウトは変更されません。
func (b *Book) UpdatePageText(index int, primary, secondary string) error {
	if index < 0 || index >= len(b.Pages) {
		return fmt.Errorf("ページ番号 %d は範囲外です (総ページ数: %d)", index+1, len(b.Pages))
	}
	if strings.TrimSpace(primary) == "" {
		return fmt.Errorf("主テキストを空にすることはできません: %w", ErrInputIncomplete)
	}
	b.Pages[index].TextPrimary = primary
	b.Pages[index].TextSecondary = secondary
	return nil
}

// SetPageLayout は指定ページのレイアウトを変更します。
func (b *Book) SetPageLayout(index int, layout PageLayout) error {
	if index < 0 || index >= len(b.Pages) {
		return fmt.Errorf("ページ番号 %d は範囲外です (総ページ数: %d)", index+1, len(b.Pages))
	}
	if !layout.Valid() {
		return fmt.Errorf("不正なレイアウトです: %q", layout)
	}
	b.Pages[index].Layout = layout
	return nil
}

// ValidateComplete は完成した絵本としての構造的不変条件を検証します。
// パイプラインとエクスポーターの両方が、この条件を前提に動作します。
func (b *Book) ValidateComplete() error {
	if b.Title == "" {
		return fmt.Errorf("タイトルが空です")
	}
	if b.Character == nil || !b.Character.Locked {
		return fmt.Errorf("確定済みのキャラクターがありません")
	}
	if len(b.Pages) == 0 {
		return fmt.Errorf("ページがありません")
	}
	seen := make(map[string]struct{}, len(b.Pages))
	for i, p := range b.Pages {
		if p.ID == "" {
			return fmt.Errorf("ページ %d に ID がありません", i+1)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("ページ ID %q が重複しています", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.ImageURL == "" {
			return fmt.Errorf("ページ %d の画像参照が空です", i+1)
		}
		if strings.TrimSpace(p.TextPrimary) == "" {
			return fmt.Errorf("ページ %d の主テキストが空です", i+1)
		}
	}
	return nil
}
