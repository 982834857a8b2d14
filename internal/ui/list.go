package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/songshelf/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song *models.Song
}

func (i songItem) FilterValue() string { return i.song.Name() }
func (i songItem) Title() string       { return i.song.Name() }
func (i songItem) Description() string {
	desc := i.song.Artist()
	if desc == "" {
		desc = "Unknown artist"
	}
	if i.song.ReleaseDate() != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.ReleaseDate())
	}
	return desc
}
