package notes

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/promisemux/core/response"
)

const (
	maxTitleLength = 200
	maxBodyLength  = 10_000
)

// Note is a stored note.
type Note struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the writable part of a note.
type Input struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Normalize trims surrounding whitespace.
func (in Input) Normalize() Input {
	return Input{
		Title: strings.TrimSpace(in.Title),
		Body:  strings.TrimSpace(in.Body),
	}
}

// Validate returns an unprocessable entity error listing invalid fields.
func (in Input) Validate() error {
	details := make(map[string]any)
	switch n := utf8.RuneCountInString(in.Title); {
	case n == 0:
		details["title"] = "required"
	case n > maxTitleLength:
		details["title"] = "too long"
	}
	if utf8.RuneCountInString(in.Body) > maxBodyLength {
		details["body"] = "too long"
	}

	if len(details) > 0 {
		return response.ErrUnprocessableEntity.
			WithMessage("invalid note").
			WithDetails(details)
	}
	return nil
}

func newNote(in Input, now time.Time) Note {
	return Note{
		ID:        uuid.New(),
		Title:     in.Title,
		Body:      in.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
