// Package ui provides semantic text formatting for CLI output.
//
// Formatters apply consistent colors when the terminal supports them and
// fall back to plain-text decorations (backticks, quotes, parentheses)
// when color is disabled via NO_COLOR or non-terminal output. Use the
// semantic formatter that matches the meaning of the text, not the color
// you want:
//
//	fmt.Printf("Wrote %s\n", ui.Path.Sprint(outPath))
//	fmt.Printf("%s carrier encoded\n", ui.Success.Sprint("✓"))
//	fmt.Printf("Try %s\n", ui.Code.Sprint("rosecrypt capacity --width 64 --height 64"))
//
// Decoded payload bytes are written raw to stdout by the decode command;
// formatters must only ever decorate human-facing status text on stderr or
// command summaries.
package ui
