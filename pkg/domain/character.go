package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
)

// Character は絵本の主人公を表します。
// キャラクターは1冊の Book に専属し、Locked が true になった後は
// 一切の変更ができません（確定は一方向の遷移で、解除操作は存在しません）。
type Character struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Locked      bool   `json:"is_locked"`
}

// Lock はキャラクターを確定します。確定済みのキャラクターに対しては何もしません。
func (c *Character) Lock() {
	c.Locked = true
}

// SetDescription はキャラクター設定の説明文を書き換えます。
// 確定済みのキャラクターは変更できません。
func (c *Character) SetDescription(desc string) error {
	if c.Locked {
		return fmt.Errorf("確定済みのキャラクターは変更できません")
	}
	if strings.TrimSpace(desc) == "" {
		return fmt.Errorf("キャラクターの説明文が空です: %w", ErrInputIncomplete)
	}
	c.Description = desc
	return nil
}

// SetImageURL はキャラクターの画像参照を書き換えます。
// 確定済みのキャラクターは変更できません。
func (c *Character) SetImageURL(url string) error {
	if c.Locked {
		return fmt.Errorf("確定済みのキャラクターは変更できません")
	}
	c.ImageURL = url
	return nil
}

// String はキャラクターの情報を文字列で返すのだ。
func (c Character) String() string {
	state := "draft"
	if c.Locked {
		state = "locked"
	}
	return fmt.Sprintf("%s (%s)", c.ID, state)
}

// SeedFromDescription は説明文から決定論的なシード値を生成します。
// 同じ説明文には常に同じシードが対応するため、再生成時も画風が揺れにくくなります。
func SeedFromDescription(description string) int64 {
	hash := sha256.Sum256([]byte(description))
	// ハッシュの最初の4バイトを int32 に変換
	seed := int32(binary.BigEndian.Uint32(hash[:4]))
	// Geminiのシード値は正の数が望ましいため、最上位ビットを落とすのが安全なのだ
	return int64(seed & 0x7FFFFFFF)
}
