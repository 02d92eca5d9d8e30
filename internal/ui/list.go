package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/mwhitfield/clavier/internal/models"
)

var (
	_ list.Item = sheetItem{}
	_ list.Item = sourceItem{}
	_ list.Item = levelItem{}
	_ list.Item = genreItem{}
)

// sheetItem wraps [models.Sheet] to implement [list.Item].
type sheetItem struct {
	sheet models.Sheet
}

func (i sheetItem) FilterValue() string { return i.sheet.Title }
func (i sheetItem) Title() string       { return i.sheet.Title }
func (i sheetItem) Description() string {
	desc := i.sheet.Composer
	if desc == "" {
		desc = "unknown composer"
	}
	if i.sheet.Key != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.sheet.Key)
	}
	if i.sheet.LevelName != nil {
		desc = fmt.Sprintf("%s • %s", desc, *i.sheet.LevelName)
	}
	if i.sheet.ExamPiece {
		desc = fmt.Sprintf("%s • exam piece", desc)
	}
	return desc
}

// sourceItem wraps [models.Source] to implement [list.Item].
type sourceItem struct {
	source models.Source
}

func (i sourceItem) FilterValue() string { return i.source.Title }
func (i sourceItem) Title() string       { return i.source.Title }
func (i sourceItem) Description() string {
	desc := i.source.Format
	if i.source.Author != "" {
		desc = fmt.Sprintf("%s • %s", i.source.Author, i.source.Format)
	}
	return desc
}

// levelItem wraps [models.Level] to implement [list.Item].
type levelItem struct {
	level models.Level
}

func (i levelItem) FilterValue() string { return i.level.Name }
func (i levelItem) Title() string       { return i.level.Name }
func (i levelItem) Description() string { return "difficulty level" }

// genreItem wraps [models.Genre] to implement [list.Item].
type genreItem struct {
	genre models.Genre
}

func (i genreItem) FilterValue() string { return i.genre.Name }
func (i genreItem) Title() string       { return i.genre.Name }
func (i genreItem) Description() string { return "genre" }
