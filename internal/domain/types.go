// Package domain holds the records shared by the teleprompter, the store and the screens.
package domain

import (
	"fmt"
	"time"
)

// Mode is the capture mode chosen before recording. It never changes for a session.
type Mode string

const (
	ModeVideo Mode = "video"
	ModeAudio Mode = "audio"
)

// ParseMode accepts "video" or "audio".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeVideo, ModeAudio:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown recording mode %q", s)
}

// Extension returns the media file extension a capture backend would write.
func (m Mode) Extension() string {
	if m == ModeAudio {
		return ".m4a"
	}
	return ".mp4"
}

// Toggle flips between video and audio.
func (m Mode) Toggle() Mode {
	if m == ModeVideo {
		return ModeAudio
	}
	return ModeVideo
}

// User is the signed-in person.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Account is a locally registered user and its password hash.
type Account struct {
	User         User   `json:"user"`
	PasswordHash string `json:"passwordHash"`
}

// Recording is the persisted metadata of one finished take. Only Title may change after save.
type Recording struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	DurationSeconds int       `json:"duration"`
	CreatedAt       time.Time `json:"date"`
	Mode            Mode      `json:"type"`
	StoragePath     string    `json:"filePath"`
}

// Script is a saved script in the library.
type Script struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
