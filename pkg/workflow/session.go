package workflow

import (
	"fmt"

	"github.com/shouni/go-ehon-kit/pkg/domain"
)

// Step は作成セッションの現在の画面・工程を表します。
type Step string

const (
	StepDashboard  Step = "dashboard"
	StepCharacter  Step = "character"
	StepStory      Step = "story"
	StepEditor     Step = "editor"
	StepWorksheets Step = "worksheets"
)

// Event はセッションの工程を進める出来事です。
type Event string

const (
	// EventStartNewBook は新しいブックの作成を開始します。
	EventStartNewBook Event = "start_new_book"
	// EventCharacterLocked はキャラクターの確定を受けて物語工程へ進みます。
	EventCharacterLocked Event = "character_locked"
	// EventBookAssembled はブックの組み立て完了を受けて編集工程へ進みます。
	EventBookAssembled Event = "book_assembled"
	// EventOpenEditor は編集画面を開きます。ブックが存在する場合のみ有効です。
	EventOpenEditor Event = "open_editor"
	// EventOpenWorksheets はワークシート画面を開きます。ブックが存在する場合のみ有効です。
	EventOpenWorksheets Event = "open_worksheets"
	// EventReturnToLibrary はどの工程からでもライブラリに戻ります。
	EventReturnToLibrary Event = "return_to_library"
)

// Transition は現在の工程とイベントから次の工程を導出する純粋関数です。
// 許可されない組み合わせはエラーになり、工程は変化しません。
func Transition(current Step, ev Event) (Step, error) {
	switch ev {
	case EventStartNewBook:
		if current == StepDashboard {
			return StepCharacter, nil
		}
	case EventCharacterLocked:
		if current == StepCharacter {
			return StepStory, nil
		}
	case EventBookAssembled:
		if current == StepStory {
			return StepEditor, nil
		}
	case EventOpenEditor:
		if current == StepEditor || current == StepWorksheets {
			return StepEditor, nil
		}
	case EventOpenWorksheets:
		if current == StepEditor || current == StepWorksheets {
			return StepWorksheets, nil
		}
	case EventReturnToLibrary:
		return StepDashboard, nil
	}
	return current, fmt.Errorf("工程 '%s' ではイベント '%s' を受け付けられません", current, ev)
}

// Session は1冊の作成セッションの状態を保持します。
// 工程の遷移は Transition の規則に従い、ブックを要する画面はブックの存在が前提です。
type Session struct {
	Step      Step
	Character *domain.Character
	Book      *domain.Book
	Worksheet *domain.Worksheet
}

// NewSession はライブラリ画面から始まるセッションを返します。
func NewSession() *Session {
	return &Session{Step: StepDashboard}
}

// Apply はイベントを適用して工程を進めます。
// 編集やワークシート画面はブックが組み立て済みの場合のみ開けます。
func (s *Session) Apply(ev Event) error {
	if (ev == EventOpenEditor || ev == EventOpenWorksheets) && s.Book == nil {
		return fmt.Errorf("ブックが存在しないため画面 '%s' を開けません: %w", ev, domain.ErrInputIncomplete)
	}

	next, err := Transition(s.Step, ev)
	if err != nil {
		return err
	}
	s.Step = next

	// ライブラリに戻ると作成中の状態は破棄される
	if ev == EventReturnToLibrary {
		s.Character = nil
		s.Book = nil
		s.Worksheet = nil
	}
	return nil
}

// AttachCharacter は確定済みキャラクターをセッションに取り込み、物語工程へ進めます。
func (s *Session) AttachCharacter(char *domain.Character) error {
	if char == nil || !char.Locked {
		return fmt.Errorf("確定済みのキャラクターが必要です: %w", domain.ErrInputIncomplete)
	}
	if err := s.Apply(EventCharacterLocked); err != nil {
		return err
	}
	s.Character = char
	return nil
}

// AttachBook は組み立て済みブックをセッションに取り込み、編集工程へ進めます。
func (s *Session) AttachBook(book *domain.Book) error {
	if book == nil || len(book.Pages) == 0 {
		return fmt.Errorf("組み立て済みのブックが必要です: %w", domain.ErrInputIncomplete)
	}
	if err := s.Apply(EventBookAssembled); err != nil {
		return err
	}
	s.Book = book
	return nil
}
