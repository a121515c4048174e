package phh

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/poker"
)

// Extension is the file extension of written hand histories.
const Extension = ".phh"

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	// Use tabs for arrays to match human expectations
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a hand history written by Encode.
func Decode(r io.Reader) (*HandHistory, error) {
	var hand HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hand); err != nil {
		return nil, fmt.Errorf("phh: decode: %w", err)
	}
	return &hand, nil
}

// FormatAction renders one player action. player is the 0-based PHH index
// and amount the street total for a raise.
func FormatAction(player int, action game.ActionType, amount int) (string, bool) {
	p := fmt.Sprintf("p%d", player+1)
	switch action {
	case game.Fold:
		return p + " f", true
	case game.Check, game.Call:
		return p + " cc", true
	case game.Raise:
		if amount <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", p, amount), true
	default:
		return fmt.Sprintf("# %s %s %d", p, action, amount), true
	}
}

// formatCards packs cards the way PHH writes them: "AsKs".
func formatCards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

// WriteFile encodes hand into dir as <hand id>.phh and returns the path.
// Readers of dir see either no file or the complete file.
func WriteFile(dir string, hand *HandHistory) (string, error) {
	if hand == nil || hand.HandID == "" {
		return "", fmt.Errorf("phh: hand history needs an id")
	}
	data, err := EncodeToBytes(hand)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("phh: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, hand.HandID+Extension)
	if err := writeAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("phh: write %s: %w", path, err)
	}
	return path, nil
}

// writeAtomic writes to a temporary file beside filename and renames it into
// place. The temp file shares the directory so the rename stays on one
// filesystem.
func writeAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}
