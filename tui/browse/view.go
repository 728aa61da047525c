package browse

import (
	"fmt"
	"strings"

	"github.com/vuminhle/fossildeck/domain"
	"github.com/vuminhle/fossildeck/tui/common"
)

// View renders the browse screen.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("FossilDeck")
	tagline := common.TaglineStyle.Render("<the museum in your terminal>")
	b.WriteString(title + tagline + "\n\n")

	if m.searching {
		b.WriteString("  " + common.LabelStyle.Render("Search ") + m.query.View() + "\n")
		b.WriteString("  " + common.LabelStyle.Render("Period ") + m.period.View() + "\n")
		b.WriteString("  " + common.LabelStyle.Render("Origin ") + m.origin.View() + "\n")
		b.WriteString(common.StatusBarStyle.Render("  tab next field · enter search · esc close") + "\n\n")
	}

	switch {
	case m.loading:
		b.WriteString("  " + m.spinner.View() + " Excavating the catalog...\n")
	case m.err != nil:
		b.WriteString("  " + common.ErrorStyle.Render(domain.UserMessage(m.err)) + "\n")
	case len(m.fossils) == 0:
		b.WriteString(common.TimestampStyle.Render("  No specimens matched. Press / to adjust the search.") + "\n")
	default:
		for i, f := range m.fossils {
			b.WriteString(m.renderResult(f, i == m.cursor))
		}
		if m.totalPage > 1 {
			b.WriteString(common.TimestampStyle.Render(
				fmt.Sprintf("  Page %d/%d · %d specimens", m.page+1, m.totalPage, m.total)) + "\n")
		}
	}

	if !m.searching {
		b.WriteString(common.StatusBarStyle.Render("  enter open · / search · n/p page · a account · L login · q quit"))
	}
	return b.String()
}

func (m Model) renderResult(f domain.FossilSummary, selected bool) string {
	name := common.Truncate(f.Name, 40)
	line := fmt.Sprintf("%s  %s", name, common.LabelStyle.Render(f.Origin))

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Render(line) + "\n"
}
