// package formatter provides functions to export catalog data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/songshelf/internal/models"
)

// Format identifies an export output format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat normalizes a user-supplied format name. Unrecognized names
// return an error listing the supported formats.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "csv", "":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (supported: csv, markdown, text)", raw)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	default:
		return "csv"
	}
}

// ExportToCSV converts songs to CSV format with columns: ID, Name, Artist, Release Date, Spotify ID, Added
func ExportToCSV(songs []*models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Artist", "Release Date", "Spotify ID", "Added"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			song.ID(),
			song.Name(),
			song.Artist(),
			song.ReleaseDate(),
			song.SpotifyID(),
			song.AddedAt().Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts songs to a Markdown document with a song table
func ExportToMarkdown(songs []*models.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# My Songs\n\n")
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(songs)))

	buf.WriteString("| Name | Artist | Release Date |\n")
	buf.WriteString("| --- | --- | --- |\n")
	for _, song := range songs {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			escapePipes(song.Name()), escapePipes(song.Artist()), song.ReleaseDate()))
	}

	return buf.Bytes(), nil
}

// ExportToText converts songs to plain text format
func ExportToText(songs []*models.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(songs)))

	for i, song := range songs {
		line := fmt.Sprintf("%d. %s - %s", i+1, song.Artist(), song.Name())
		if song.ReleaseDate() != "" {
			line += fmt.Sprintf(" (%s)", song.ReleaseDate())
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// Export renders songs in the requested format.
func Export(songs []*models.Song, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return ExportToMarkdown(songs)
	case FormatText:
		return ExportToText(songs)
	default:
		return ExportToCSV(songs)
	}
}

// WriteExport renders songs in the requested format and writes the result to
// a file, returning the path written.
//
// Defaults to songs.{ext} when no path is given.
func WriteExport(songs []*models.Song, format Format, filepath string) (string, error) {
	if filepath == "" {
		filepath = "songs." + format.Extension()
	}

	data, err := Export(songs, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return filepath, nil
}

// escapePipes keeps field text from breaking Markdown table cells.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
