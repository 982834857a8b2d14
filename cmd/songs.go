package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/songshelf/internal/formatter"
	"github.com/desertthunder/songshelf/internal/models"
	"github.com/desertthunder/songshelf/internal/shared"
	"github.com/desertthunder/songshelf/internal/tasks"
	"github.com/urfave/cli/v3"
)

// songView is the JSON shape for a stored song.
type songView struct {
	ID          string    `json:"id"`
	SpotifyID   string    `json:"spotify_id"`
	Name        string    `json:"name"`
	Artist      string    `json:"artist"`
	ReleaseDate string    `json:"release_date"`
	AddedAt     time.Time `json:"added_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func viewOf(song *models.Song) songView {
	return songView{
		ID:          song.ID(),
		SpotifyID:   song.SpotifyID(),
		Name:        song.Name(),
		Artist:      song.Artist(),
		ReleaseDate: song.ReleaseDate(),
		AddedAt:     song.AddedAt(),
		UpdatedAt:   song.UpdatedAt(),
	}
}

// Import searches the catalog for the query argument and stores the best match.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: a track name is required", shared.ErrMissingArgument)
	}

	catalog, err := r.requireCatalog()
	if err != nil {
		return err
	}

	config := r.loadConfig(cmd)
	db, songs, err := r.openStore(config)
	if err != nil {
		return err
	}
	defer db.Close()

	result := tasks.NewImporter(catalog, songs).Import(ctx, query)

	switch result.Status {
	case tasks.ImportCreated:
		r.writePlain("✓ Added %s - %s\n", result.Song.Artist(), result.Song.Name())
		return nil
	case tasks.ImportAlreadyExists:
		r.writePlain("Already cataloged: %s - %s\n", result.Song.Artist(), result.Song.Name())
		return nil
	case tasks.ImportNotFound:
		return fmt.Errorf("no match for %q: %w", query, shared.ErrTrackNotFound)
	default:
		return fmt.Errorf("import failed: %w", result.Err)
	}
}

// SongsList prints the stored catalog as a table, or JSON with --json.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	db, songs, err := r.openStore(config)
	if err != nil {
		return err
	}
	defer db.Close()

	order := models.ParseSortKey(cmd.String("sort"))
	list, err := songs.List(order)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		views := make([]songView, len(list))
		for i, song := range list {
			views[i] = viewOf(song)
		}
		return r.writeJSON(views, cmd.Bool("pretty"))
	}

	if len(list) == 0 {
		r.writePlain("No songs cataloged yet. Run 'songshelf import <name>' to add one.\n")
		return nil
	}

	r.writePlain("%-30s %-24s %-12s\n", "NAME", "ARTIST", "RELEASED")
	for _, song := range list {
		r.writePlain("%-30s %-24s %-12s\n", truncate(song.Name(), 30), truncate(song.Artist(), 24), song.ReleaseDate())
	}
	r.writePlain("\n%d songs\n", len(list))

	return nil
}

// SongsExport writes the catalog to a file in the requested format.
func (r *Runner) SongsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	config := r.loadConfig(cmd)
	db, songs, err := r.openStore(config)
	if err != nil {
		return err
	}
	defer db.Close()

	order := models.ParseSortKey(cmd.String("sort"))
	list, err := songs.List(order)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	path, err := formatter.WriteExport(list, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Exported %d songs to %s\n", len(list), path)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
