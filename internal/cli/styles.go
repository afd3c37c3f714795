package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	addrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	mnemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	operandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pcodeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// printer renders command output, dropping styles when --plain is set
// or stdout is not a terminal.
type printer struct {
	w     io.Writer
	plain bool
}

func newPrinter(cmd *cobra.Command) *printer {
	plain, _ := cmd.Flags().GetBool("plain")
	if !term.IsTerminal(os.Stdout.Fd()) {
		plain = true
	}
	return &printer{w: cmd.OutOrStdout(), plain: plain}
}

func (p *printer) styled(s lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return s.Render(text)
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}
