package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// formatter colours a piece of output, or decorates it when colour is off.
type formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func (f formatter) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

func (f formatter) Sprintf(format string, a ...any) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return color.NoColor
}

var (
	successText   = formatter{color.New(color.FgGreen), "", ""}
	errorText     = formatter{color.New(color.FgRed), "", ""}
	warningText   = formatter{color.New(color.FgYellow), "", ""}
	highlightText = formatter{color.New(color.FgCyan), "'", "'"}
	mutedText     = formatter{color.New(color.FgHiBlack), "(", ")"}
	codeText      = formatter{color.New(color.FgYellow), "`", "`"}
)
