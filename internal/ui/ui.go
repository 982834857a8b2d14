package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songshelf/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SongListView ViewState = iota
	SongDetailView
)

// Store is the read surface the TUI needs from the song repository.
type Store interface {
	List(order models.SortKey) ([]*models.Song, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	store    Store
	sort     models.SortKey
	width    int
	height   int
	songList list.Model
	selected *models.Song
	err      error
	help     help.Model
	keys     keyMap
}

type songsLoadedMsg struct {
	songs []*models.Song
	err   error
}

// NewModel creates a new TUI model reading songs from the given store.
func NewModel(ctx context.Context, store Store) *Model {
	return &Model{
		ctx:   ctx,
		view:  SongListView,
		store: store,
		sort:  models.SortNameAsc,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Init initializes the TUI by loading the catalog.
func (m *Model) Init() tea.Cmd {
	return m.loadSongs()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.songList.Width() == 0 {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SongListView:
			return m.handleListKeys(msg)
		case SongDetailView:
			return m.handleDetailKeys(msg)
		}

	case songsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.songs))
		for i, song := range msg.songs {
			items[i] = songItem{song: song}
		}
		m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.songList.Title = m.listTitle()
		m.songList.SetSize(m.width-4, m.height-8)
		return m, nil
	}

	var cmd tea.Cmd
	if m.view == SongListView {
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case SongListView:
		return m.renderList()
	case SongDetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if selected := m.songList.SelectedItem(); selected != nil {
			if item, ok := selected.(songItem); ok {
				m.selected = item.song
				m.view = SongDetailView
			}
		}
		return m, nil
	case "n":
		m.sort = models.Toggles(m.sort).Name
		return m, m.loadSongs()
	case "d":
		m.sort = models.Toggles(m.sort).Date
		return m, m.loadSongs()
	case "a":
		m.sort = models.Toggles(m.sort).Artist
		return m, m.loadSongs()
	case "r":
		return m, m.loadSongs()
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = SongListView
		m.selected = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) loadSongs() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.store.List(m.sort)
		return songsLoadedMsg{songs: songs, err: err}
	}
}

func (m *Model) listTitle() string {
	labels := map[models.SortKey]string{
		models.SortNameAsc:    "name ↑",
		models.SortNameDesc:   "name ↓",
		models.SortDateAsc:    "date ↑",
		models.SortDateDesc:   "date ↓",
		models.SortArtistAsc:  "artist ↑",
		models.SortArtistDesc: "artist ↓",
	}
	return fmt.Sprintf("My Songs · %s", labels[m.sort])
}

func (m *Model) renderList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.name, m.keys.date, m.keys.artist, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		m.view = SongListView
		return m.renderList()
	}

	title := styles.title.Render(m.selected.Name())
	info := fmt.Sprintf(
		"\nArtist: %s\nRelease Date: %s\nSpotify ID: %s\nAdded: %s\n",
		m.selected.Artist(),
		m.selected.ReleaseDate(),
		m.selected.SpotifyID(),
		m.selected.AddedAt().Format("2006-01-02"),
	)

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
