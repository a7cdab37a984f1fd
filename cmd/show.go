package cmd

import (
	"bytes"
	"context"
	"crypto/md5"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/inktable/internal/ansi"
	"github.com/arcanaland/inktable/internal/card"
	"github.com/arcanaland/inktable/internal/config"
	"github.com/arcanaland/inktable/internal/normalize"
	"github.com/arcanaland/inktable/internal/source"
)

const (
	artWidth  = 30
	artHeight = 21
)

var noArt bool

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Display a single card as it appears in the table",
	Long: `Show fetches the dataset and prints one card's table entry with ANSI art of its image.
The name is the card's simple name, matched case-insensitively.

Rendered art is cached under XDG_CACHE_HOME/inktable/art.

Examples:
  inktable show "mickey mouse - brave little tailor"
  inktable show --no-art "elsa - spirit of winter"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		fetcher, err := newFetcher(cfg)
		if err != nil {
			return describe(err)
		}

		dataset, err := fetcher.Fetch(cmd.Context())
		if err != nil {
			return describe(err)
		}

		result := normalize.NewNormalizer(normalize.DefaultValues()).Build(dataset.Cards)
		entry, ok := findEntry(result.Table, args[0])
		if !ok {
			return fmt.Errorf("card not found: %s", args[0])
		}

		var art string
		if !noArt && entry.ImageURL != "" {
			art, err = loadArt(cmd.Context(), fetcher, entry.ImageURL)
			if err != nil {
				slog.Warn("card art unavailable", "url", entry.ImageURL, "error", err)
			}
		}

		displayCard(cmd.OutOrStdout(), entry, art)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&noArt, "no-art", false, "skip downloading and rendering card art")
}

// findEntry looks the name up exactly, then case-insensitively
func findEntry(t *normalize.Table, name string) (card.Entry, bool) {
	if e, ok := t.Get(name); ok {
		return e, true
	}
	for _, e := range t.Entries() {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return card.Entry{}, false
}

// loadArt returns cached art for the image URL or renders and caches it.
// Without a cache directory the art is rendered every time.
func loadArt(ctx context.Context, fetcher *source.Fetcher, imageURL string) (string, error) {
	var cachePath string
	if cacheHome := config.GetCacheDir(); cacheHome != "" {
		cacheDir := filepath.Join(cacheHome, "art")
		if err := os.MkdirAll(cacheDir, 0755); err != nil {
			slog.Warn("art cache unavailable", "dir", cacheDir, "error", err)
		} else {
			cachePath = filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(imageURL))))
		}
	}

	if cachePath != "" {
		if data, err := os.ReadFile(cachePath); err == nil {
			return string(data), nil
		}
	}

	body, err := fetcher.Get(ctx, imageURL)
	if err != nil {
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	art := ansi.FromImage(img, artWidth, artHeight)
	if cachePath != "" {
		if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
			slog.Warn("failed to cache card art", "path", cachePath, "error", err)
		}
	}

	return art, nil
}

// displayCard prints the art on the left and the entry fields on the right
func displayCard(out io.Writer, e card.Entry, art string) {
	var artLines []string
	if art != "" {
		artLines = strings.Split(strings.TrimRight(art, "\n"), "\n")
	}
	maxArtWidth := 0
	for _, line := range artLines {
		if w := ansi.Width(line); w > maxArtWidth {
			maxArtWidth = w
		}
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	label := colorize.New(colorize.FgCyan).SprintFunc()
	value := colorize.New(colorize.FgHiWhite).SprintFunc()

	var infoLines []string
	infoLines = append(infoLines, label("Card:      ")+value(e.Name))
	infoLines = append(infoLines, label("ID:        ")+value(strconv.Itoa(e.ID)))
	if e.Color != "" {
		infoLines = append(infoLines, label("Ink:       ")+ansi.InkColor(e.Color).Sprint(e.Color))
	}
	infoLines = append(infoLines, label("Cost:      ")+value(strconv.Itoa(e.Cost)))
	infoLines = append(infoLines, label("Inkwell:   ")+value(strconv.FormatBool(e.Inkwell)))
	infoLines = append(infoLines, label("Strength:  ")+value(strconv.Itoa(e.Strength)))
	infoLines = append(infoLines, label("Willpower: ")+value(strconv.Itoa(e.Willpower)))
	infoLines = append(infoLines, label("Lore:      ")+value(strconv.Itoa(e.Lore)))

	spacing := 4
	infoStartCol := 0
	if maxArtWidth > 0 {
		infoStartCol = maxArtWidth + spacing
	}

	infoWidth := width - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	if e.AbilityTypes != "" {
		infoLines = append(infoLines, label("Abilities: ")+value(e.AbilityTypes))
	}
	if e.AbilityText != "" {
		infoLines = append(infoLines, "")
		for _, paragraph := range strings.Split(e.AbilityText, normalize.AbilityTextSeparator) {
			infoLines = append(infoLines, ansi.WrapText(paragraph, infoWidth)...)
		}
	}

	fmt.Fprintln(out)

	maxLines := max(len(artLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Fprint(out, "  ")
		if i < len(artLines) {
			fmt.Fprint(out, artLines[i])
			visibleWidth := ansi.Width(artLines[i])
			fmt.Fprint(out, strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Fprint(out, strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Fprint(out, infoLines[i])
		}

		fmt.Fprintln(out)
	}

	fmt.Fprintln(out)
}
