package slot

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

var (
	ErrEmptyBookerName    = errors.New("booker name cannot be empty")
	ErrBookerNameTooLong  = errors.New("booker name is too long (max 20 characters)")
	ErrInvalidBookerName  = errors.New("invalid characters in name")
	ErrEmptyNotes         = errors.New("notes cannot be empty")
	ErrNotesTooLong       = errors.New("notes are too long (max 81 characters)")
	ErrInvalidNotes       = errors.New("invalid characters in notes")
	ErrMissingSlotInstant = errors.New("slot datetime is required")
)

const (
	MaxBookerNameLength = 20
	MaxNotesLength      = 81
)

var (
	validBookerName = regexp.MustCompile(`^[\p{L}0-9 .!?\-@_]+$`)
	validNotes      = regexp.MustCompile(`^[\p{L}0-9 .!?@_#%*\-()+=:~\n£€¥$¢]+$`)
)

type BookerName struct {
	value string
}

func NewBookerName(value string) (BookerName, error) {
	if value == "" {
		return BookerName{}, ErrEmptyBookerName
	}
	if utf8.RuneCountInString(value) > MaxBookerNameLength {
		return BookerName{}, ErrBookerNameTooLong
	}
	if !validBookerName.MatchString(value) {
		return BookerName{}, ErrInvalidBookerName
	}
	return BookerName{value: value}, nil
}

func (n BookerName) String() string {
	return n.value
}

type Notes struct {
	value string
}

func NewNotes(value string) (Notes, error) {
	if value == "" {
		return Notes{}, ErrEmptyNotes
	}
	if utf8.RuneCountInString(value) > MaxNotesLength {
		return Notes{}, ErrNotesTooLong
	}
	if !validNotes.MatchString(value) {
		return Notes{}, ErrInvalidNotes
	}
	return Notes{value: value}, nil
}

func (n Notes) String() string {
	return n.value
}
