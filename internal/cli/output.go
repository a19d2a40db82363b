package cli

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/biocrayon/pkg/colour"
)

const swatchWidth = 4

// styled reports whether output to w may carry ANSI colour.
func (a *app) styled(w io.Writer) bool {
	if a.noColour {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// verdict renders PASS or FAIL.
func (a *app) verdict(cmd *cobra.Command, ok bool) string {
	c := color.New(color.FgRed, color.Bold)
	text := "FAIL"
	if ok {
		c = color.New(color.FgGreen, color.Bold)
		text = "PASS"
	}
	if a.styled(cmd.OutOrStdout()) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

// swatch renders hex as a colour block, or nothing when output is plain.
func (a *app) swatch(cmd *cobra.Command, hex string) string {
	if !a.styled(cmd.OutOrStdout()) {
		return ""
	}
	rgb, err := colour.ParseHex(hex)
	if err != nil {
		return ""
	}
	return colour.Swatch(rgb, swatchWidth)
}

// sample renders hex as a block with the hex code written over it in black or
// white, whichever reads better, or nothing when output is plain.
func (a *app) sample(cmd *cobra.Command, hex string) string {
	if !a.styled(cmd.OutOrStdout()) {
		return ""
	}
	return textSwatch(hex, hex)
}

func textSwatch(hex, text string) string {
	rgb, err := colour.ParseHex(hex)
	if err != nil {
		return ""
	}
	return colour.SwatchWithText(rgb, text, max(swatchWidth, len(text)+2))
}

// strip renders a row of swatches, one per colour.
func (a *app) strip(cmd *cobra.Command, hexes []string) string {
	var b strings.Builder
	for _, hex := range hexes {
		b.WriteString(a.swatch(cmd, hex))
	}
	return b.String()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
